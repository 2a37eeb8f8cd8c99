// Package editor runs editing commands over a buffer and its selections.
//
// A Context bundles everything a command touches: the buffer, the
// selection list, registers, options, the jump list, the word index and
// the external collaborators (shell, macro runner). Commands are plain
// functions:
//
//	err := ctx.Run(editor.ActionErase, editor.Params{Register: 'a'})
//
// Run executes the command inside a buffer transaction. When the command
// fails the buffer edits are rolled back and the selections restored, so
// a failing command leaves no trace.
//
// Commands are registered by name (see Lookup). The names follow a
// "namespace.action" scheme: edit.*, selection.*, search.*, history.*,
// jump.* and macro.*.
package editor
