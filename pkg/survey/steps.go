package survey

import (
	"github.com/looplab/fsm"

	"github.com/triplea-rent/feedbackbot/pkg/i18n"
	"github.com/triplea-rent/feedbackbot/pkg/report"
)

// control describes the interactive element a step renders alongside its
// prompt. Text steps render none.
type control int

const (
	controlNone control = iota
	controlContact
	controlModules
	controlRating
	controlYesNo
)

// stepSpec is one row of the survey: the prompt to render, where the answer
// lands, the control shown and the step that follows.
type stepSpec struct {
	state     string
	promptKey string
	storeKey  string
	control   control
	next      string
}

// flow is the fixed step sequence. One driver interprets it; the modules
// toggle and the ready confirmation carry extra handling in the driver.
var flow = []stepSpec{
	{StateCompany, i18n.KeyAskCompany, report.KeyCompany, controlNone, StateContact},
	{StateContact, i18n.KeyAskContact, report.KeyContact, controlContact, StateModules},
	{StateModules, i18n.KeyAskModules, "", controlModules, StateRating},
	{StateRating, i18n.KeyAskRating, report.KeyRating, controlRating, StatePros},
	{StatePros, i18n.KeyAskPros, report.KeyPros, controlNone, StateCons},
	{StateCons, i18n.KeyAskCons, report.KeyCons, controlNone, StateBugs},
	{StateBugs, i18n.KeyAskBugs, report.KeyBugs, controlNone, StateMissing},
	{StateMissing, i18n.KeyAskMissing, report.KeyMissing, controlNone, StateReady},
	{StateReady, i18n.KeyAskReady, report.KeyReady, controlYesNo, StateIdle},
}

func specFor(state string) (stepSpec, bool) {
	for _, s := range flow {
		if s.state == state {
			return s, true
		}
	}
	return stepSpec{}, false
}

// acceptsText reports whether the step is gated on a free-text message.
// The contact step accepts text as well as a structured contact payload.
func (s stepSpec) acceptsText() bool {
	return s.control == controlNone || s.control == controlContact
}

// NewMachine builds the per-session step machine: the linear forward chain,
// plus the global cancel transition accepted from any step.
func NewMachine() *fsm.FSM {
	all := make([]string, 0, len(flow)+1)
	all = append(all, StateIdle)

	events := fsm.Events{
		{Name: EventBegin, Src: []string{StateIdle}, Dst: StateCompany},
	}
	for _, s := range flow {
		events = append(events, fsm.EventDesc{Name: EventAdvance, Src: []string{s.state}, Dst: s.next})
		all = append(all, s.state)
	}
	events = append(events, fsm.EventDesc{Name: EventCancel, Src: all, Dst: StateIdle})

	return fsm.NewFSM(StateIdle, events, fsm.Callbacks{})
}
