package core

import (
	"fmt"

	apperrors "campreserv/pkg/errors"
)

// Flow is an ordered sequence of named steps executed strictly in order.
// A step failure stops the flow; later steps never run.
type Flow interface {
	Name() string
	Steps() []*Step
}

type Engine struct {
	flows map[string]Flow
}

func NewEngine(flows ...Flow) *Engine {
	m := map[string]Flow{}
	for _, f := range flows {
		m[f.Name()] = f
	}
	return &Engine{flows: m}
}

// Run executes the named flow. Step errors are wrapped with the step name
// but keep their original type, so typed errors survive to the HTTP
// boundary.
func (e *Engine) Run(flowName string, fctx *FlowContext) error {
	f, exists := e.flows[flowName]
	if !exists {
		return apperrors.NotFoundWithID("flow", flowName)
	}
	for _, step := range f.Steps() {
		if err := step.Execute(fctx); err != nil {
			return fmt.Errorf("%s step failed: %w", step.Name, err)
		}
	}
	return nil
}

// Flows lists the registered flow names.
func (e *Engine) Flows() []string {
	names := make([]string, 0, len(e.flows))
	for name := range e.flows {
		names = append(names, name)
	}
	return names
}
