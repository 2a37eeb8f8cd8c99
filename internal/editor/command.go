package editor

import (
	"maps"
	"slices"

	"github.com/dshills/selcore/internal/engine/selection"
)

// Params are the arguments of one command invocation.
type Params struct {
	// Count is the numeric prefix; 0 means none was given.
	Count int
	// Register names the register to read or write; 0 selects the
	// command's default register.
	Register rune
	// Arg is the command's text argument: inserted text, a regex pattern,
	// a shell command or a character.
	Arg string
}

func (p Params) register(def rune) rune {
	if p.Register == 0 {
		return def
	}
	return p.Register
}

func (p Params) repeat() int {
	return max(p.Count, 1)
}

// Command is an editing command.
type Command func(ctx *Context, p Params) error

// Action names.
const (
	ActionYank           = "edit.yank"
	ActionErase          = "edit.erase"
	ActionChange         = "edit.change"
	ActionInsert         = "edit.insert"
	ActionAppend         = "edit.append"
	ActionInsertLine     = "edit.insertLineBegin"
	ActionAppendLine     = "edit.appendLineEnd"
	ActionOpenBelow      = "edit.openBelow"
	ActionOpenAbove      = "edit.openAbove"
	ActionPasteAfter     = "edit.pasteAfter"
	ActionPasteBefore    = "edit.pasteBefore"
	ActionReplaceYanked  = "edit.replaceYanked"
	ActionPasteAllAfter  = "edit.pasteAllAfter"
	ActionPasteAllBefore = "edit.pasteAllBefore"
	ActionReplaceChar    = "edit.replaceChar"
	ActionLowerCase      = "edit.lowerCase"
	ActionUpperCase      = "edit.upperCase"
	ActionSwapCase       = "edit.swapCase"
	ActionJoinLines      = "edit.joinLines"
	ActionJoinSelect     = "edit.joinLinesSelectSpaces"
	ActionIndent         = "edit.indent"
	ActionIndentAll      = "edit.indentAll"
	ActionDeindent       = "edit.deindent"
	ActionDeindentWhole  = "edit.deindentWhole"
	ActionAlign          = "edit.align"
	ActionCopyIndent     = "edit.copyIndent"
	ActionTabsToSpaces   = "edit.tabsToSpaces"
	ActionSpacesToTabs   = "edit.spacesToTabs"
	ActionRotateContent  = "edit.rotateContent"
	ActionPipe           = "edit.pipe"
	ActionPipeTo         = "edit.pipeTo"
	ActionInsertOutput   = "edit.insertOutput"
	ActionAppendOutput   = "edit.appendOutput"

	ActionSelectAll      = "selection.all"
	ActionSelectLine     = "selection.line"
	ActionExtendLine     = "selection.extendLine"
	ActionSelectToChar   = "selection.toChar"
	ActionSelectOnChar   = "selection.onChar"
	ActionExtendToChar   = "selection.extendToChar"
	ActionExtendOnChar   = "selection.extendOnChar"
	ActionMoveLeft       = "selection.moveLeft"
	ActionMoveRight      = "selection.moveRight"
	ActionMoveUp         = "selection.moveUp"
	ActionMoveDown       = "selection.moveDown"
	ActionExtendLeft     = "selection.extendLeft"
	ActionExtendRight    = "selection.extendRight"
	ActionExtendUp       = "selection.extendUp"
	ActionExtendDown     = "selection.extendDown"
	ActionGotoLine       = "selection.gotoLine"
	ActionSelectRegex    = "selection.regex"
	ActionSplitRegex     = "selection.split"
	ActionSplitLines     = "selection.splitLines"
	ActionKeepMatching   = "selection.keepMatching"
	ActionKeepNotMatch   = "selection.keepNotMatching"
	ActionKeepPipe       = "selection.keepPipe"
	ActionKeepMain       = "selection.keepMain"
	ActionRemoveMain     = "selection.removeMain"
	ActionReduce         = "selection.reduce"
	ActionFlip           = "selection.flip"
	ActionRotate         = "selection.rotate"
	ActionRotateBack     = "selection.rotateBackward"
	ActionCopyNextLine   = "selection.copyNextLine"
	ActionCopyPrevLine   = "selection.copyPreviousLine"
	ActionSearch         = "search.forward"
	ActionSearchBackward = "search.backward"
	ActionSearchExtend   = "search.extend"
	ActionSearchNext     = "search.next"
	ActionSearchAppend   = "search.nextAppend"
	ActionSearchPrevious = "search.previous"
	ActionSearchSelected = "search.useSelection"
	ActionUndo           = "history.undo"
	ActionRedo           = "history.redo"
	ActionSaveJump       = "jump.save"
	ActionJumpBackward   = "jump.backward"
	ActionJumpForward    = "jump.forward"
	ActionReplayMacro    = "macro.replay"
)

var commands = map[string]Command{
	ActionYank:           Yank,
	ActionErase:          Erase,
	ActionChange:         Change,
	ActionInsert:         insertCommand(selection.InsertBefore),
	ActionAppend:         insertCommand(selection.AppendAfter),
	ActionInsertLine:     insertCommand(selection.InsertAtLineBegin),
	ActionAppendLine:     insertCommand(selection.AppendAtLineEnd),
	ActionOpenBelow:      insertCommand(selection.OpenLineBelow),
	ActionOpenAbove:      insertCommand(selection.OpenLineAbove),
	ActionPasteAfter:     pasteCommand(selection.AppendAfter),
	ActionPasteBefore:    pasteCommand(selection.InsertBefore),
	ActionReplaceYanked:  pasteCommand(selection.ReplaceRange),
	ActionPasteAllAfter:  pasteAllCommand(selection.AppendAfter),
	ActionPasteAllBefore: pasteAllCommand(selection.InsertBefore),
	ActionReplaceChar:    ReplaceWithChar,
	ActionLowerCase:      LowerCase,
	ActionUpperCase:      UpperCase,
	ActionSwapCase:       SwapCase,
	ActionJoinLines:      JoinLines,
	ActionJoinSelect:     JoinLinesSelectSpaces,
	ActionIndent:         indentCommand(false),
	ActionIndentAll:      indentCommand(true),
	ActionDeindent:       deindentCommand(true),
	ActionDeindentWhole:  deindentCommand(false),
	ActionAlign:          Align,
	ActionCopyIndent:     CopyIndent,
	ActionTabsToSpaces:   TabsToSpaces,
	ActionSpacesToTabs:   SpacesToTabs,
	ActionRotateContent:  RotateContents,
	ActionPipe:           pipeCommand(true),
	ActionPipeTo:         pipeCommand(false),
	ActionInsertOutput:   insertOutputCommand(selection.InsertBefore),
	ActionAppendOutput:   insertOutputCommand(selection.AppendAfter),

	ActionSelectAll:      SelectAll,
	ActionSelectLine:     selectCommand(selection.SelectReplace, SelectLine),
	ActionExtendLine:     selectCommand(selection.SelectExtend, SelectLine),
	ActionSelectToChar:   selectToCharCommand(selection.SelectReplace, false),
	ActionSelectOnChar:   selectToCharCommand(selection.SelectReplace, true),
	ActionExtendToChar:   selectToCharCommand(selection.SelectExtend, false),
	ActionExtendOnChar:   selectToCharCommand(selection.SelectExtend, true),
	ActionMoveLeft:       moveCommand(selection.SelectReplace, 0, -1),
	ActionMoveRight:      moveCommand(selection.SelectReplace, 0, 1),
	ActionMoveUp:         moveCommand(selection.SelectReplace, -1, 0),
	ActionMoveDown:       moveCommand(selection.SelectReplace, 1, 0),
	ActionExtendLeft:     moveCommand(selection.SelectExtend, 0, -1),
	ActionExtendRight:    moveCommand(selection.SelectExtend, 0, 1),
	ActionExtendUp:       moveCommand(selection.SelectExtend, -1, 0),
	ActionExtendDown:     moveCommand(selection.SelectExtend, 1, 0),
	ActionGotoLine:       GotoLine,
	ActionSelectRegex:    regexCommand(SelectMatches),
	ActionSplitRegex:     regexCommand(SplitMatches),
	ActionSplitLines:     SplitLines,
	ActionKeepMatching:   keepCommand(true),
	ActionKeepNotMatch:   keepCommand(false),
	ActionKeepPipe:       KeepPipe,
	ActionKeepMain:       KeepMain,
	ActionRemoveMain:     RemoveMain,
	ActionReduce:         ReduceToCursors,
	ActionFlip:           FlipSelections,
	ActionRotate:         rotateCommand(1),
	ActionRotateBack:     rotateCommand(-1),
	ActionCopyNextLine:   copyOnLinesCommand(1),
	ActionCopyPrevLine:   copyOnLinesCommand(-1),
	ActionSearch:         searchCommand(selection.SelectReplace, Forward),
	ActionSearchBackward: searchCommand(selection.SelectReplace, Backward),
	ActionSearchExtend:   searchCommand(selection.SelectExtend, Forward),
	ActionSearchNext:     searchNextCommand(selection.SelectReplace, Forward),
	ActionSearchAppend:   searchNextCommand(selection.SelectAppend, Forward),
	ActionSearchPrevious: searchNextCommand(selection.SelectReplace, Backward),
	ActionSearchSelected: UseSelectionAsSearch,
	ActionUndo:           Undo,
	ActionRedo:           Redo,
	ActionSaveJump:       SaveSelections,
	ActionJumpBackward:   JumpBackward,
	ActionJumpForward:    JumpForward,
	ActionReplayMacro:    ReplayMacro,
}

// Lookup returns the command registered as name.
func Lookup(name string) (Command, bool) {
	cmd, ok := commands[name]
	return cmd, ok
}

// Names returns every registered command name, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(commands))
}
