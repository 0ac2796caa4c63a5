// Package ui contains the Bubble Tea program that powers the officer search
// wizard. The Model type focuses on message orchestration while dedicated
// helpers own navigation, dropdown loading, toggles, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window resizes, dropdown loads, spinner ticks).
//   - Key presses either drive the step navigator (internal/wizard), move
//     focus between the fields of the active step, or edit the focused field.
//
// State ownership:
//   - Step visibility and nav locking live in wizard.Navigator.
//   - Each dropdown is an internal/ui/state.Selector tracking items, cursor,
//     fuzzy filter, and viewport.
//
// Dropdown loading:
//   - Committing a department calls changeDepartment, which asks the
//     internal/ui/command bus to load the rank and unit dropdowns. The bus
//     wraps backend.Loader tasks into tea.Cmds that return command.LoadedMsg.
//   - The loaded handler only applies a result the loader still accepts, so a
//     slow response for an earlier department never replaces a newer one.
package ui
