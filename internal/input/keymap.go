package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap binds special keys; RuneKeymap binds printable keys.
type Keymap map[tcell.Key]Action
type RuneKeymap map[rune]Action

// ModKeymap binds special keys pressed together with modifiers.
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell key events into actions.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyRight] = ActionMoveNext
	p.keymap[tcell.KeyLeft] = ActionMovePrevious
	p.keymap[tcell.KeyDown] = ActionLineDown
	p.keymap[tcell.KeyUp] = ActionLineUp
	p.keymap[tcell.KeyHome] = ActionDocumentStart
	p.keymap[tcell.KeyEnd] = ActionDocumentEnd
	p.keymap[tcell.KeyTab] = ActionNextUnit
	p.keymap[tcell.KeyBacktab] = ActionPreviousUnit
	p.keymap[tcell.KeyEnter] = ActionExpand
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	p.modKeymap[tcell.ModShift] = Keymap{
		tcell.KeyRight: ActionExtendNext,
		tcell.KeyLeft:  ActionExtendPrevious,
		tcell.KeyTab:   ActionPreviousUnit,
	}

	// vi-style letters
	p.runeKeymap['l'] = ActionMoveNext
	p.runeKeymap['h'] = ActionMovePrevious
	p.runeKeymap['j'] = ActionLineDown
	p.runeKeymap['k'] = ActionLineUp
	p.runeKeymap['L'] = ActionExtendNext
	p.runeKeymap['H'] = ActionExtendPrevious
	p.runeKeymap['g'] = ActionDocumentStart
	p.runeKeymap['G'] = ActionDocumentEnd
	p.runeKeymap['e'] = ActionExpand
	p.runeKeymap['y'] = ActionCopy
	p.runeKeymap['m'] = ActionMark
	p.runeKeymap['\''] = ActionJumpToMark
	p.runeKeymap['t'] = ActionNextTheme
	p.runeKeymap['q'] = ActionQuit
}

// Bind overrides the action of a printable key.
func (p *InputProcessor) Bind(r rune, a Action) {
	p.runeKeymap[r] = a
}

// ProcessEvent returns the action bound to ev, or ActionUnknown.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) Action {
	key := ev.Key()
	mod := ev.Modifiers()

	if km, ok := p.modKeymap[mod]; ok && key != tcell.KeyRune {
		if a, ok := km[key]; ok {
			return a
		}
	}
	// Ctrl+letter keys carry ModCtrl although the key already implies it.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if key == tcell.KeyRune {
		// Shift is implied by upper-case runes.
		if mod&^tcell.ModShift != tcell.ModNone {
			return ActionUnknown
		}
		if a, ok := p.runeKeymap[ev.Rune()]; ok {
			return a
		}
		return ActionUnknown
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if a, ok := p.keymap[key]; ok {
			return a
		}
	}
	return ActionUnknown
}
