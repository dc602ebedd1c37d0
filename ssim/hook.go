package ssim

// HookPos identifies a site in the dispatch loop at which hooks fire.
type HookPos struct {
	Name string
}

// HookPosBeforeAction fires immediately before an action's handler (or the
// busy/terminated diversion) runs.
var HookPosBeforeAction = &HookPos{Name: "BeforeAction"}

// HookPosAfterAction fires immediately after an action's handler (or
// diversion) returns, before the payload reference is released.
var HookPosAfterAction = &HookPos{Name: "AfterAction"}

// ActionSnapshot is the read-only view of a dispatched action exposed to
// hooks. It outlives the action itself so a hook may safely retain it. ID
// is minted through the package's IDGenerator and is stable for the
// lifetime of this one action; it carries no semantic weight of its own.
type ActionSnapshot struct {
	ID      string
	Time    Time
	Kind    ActionKind
	Process ProcessID
	Event   Event
}

// HookCtx is the context that holds all the information about the site at
// which a hook fired.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Action ActionSnapshot
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable
// object.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase provides the bookkeeping behind Hookable, for embedding
// into the Simulator.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook. Hooks fire in registration order.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// InvokeHook triggers every registered hook.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
