package core

type Step struct {
	Name    string
	Execute func(fctx *FlowContext) error
}
