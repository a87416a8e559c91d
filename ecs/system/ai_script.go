package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/prefabs"
)

type aiScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
}

const aiLifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

// AIScriptSystem runs tengo onEnter/onExit hooks for the brain
// transitions queued on each AIScript since the previous tick.
type AIScriptSystem struct {
	Cues        combat.CueSink
	scriptCache map[ecs.Entity]*aiScriptRuntime
}

func NewAIScriptSystem(cues combat.CueSink) *AIScriptSystem {
	return &AIScriptSystem{Cues: cues, scriptCache: map[ecs.Entity]*aiScriptRuntime{}}
}

// Reload drops every compiled script so the next transition recompiles
// from the current source.
func (s *AIScriptSystem) Reload() {
	s.scriptCache = map[ecs.Entity]*aiScriptRuntime{}
}

func (s *AIScriptSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	for e := range s.scriptCache {
		if !ecs.IsAlive(w, e) {
			delete(s.scriptCache, e)
		}
	}

	ecs.ForEach(w, component.AIScriptComponent.Kind(), func(e ecs.Entity, script *component.AIScript) {
		if len(script.Pending) == 0 {
			return
		}
		pending := script.Pending
		script.Pending = nil

		rt, err := s.getScriptRuntime(e, script.Path)
		if err != nil {
			fmt.Printf("ai: entity=%s load script %q error: %v\n", e, script.Path, err)
			return
		}
		engine := s.buildEngine(w, e)
		for _, change := range pending {
			if err := rt.runPhase("exit", change.From, engine); err != nil {
				fmt.Printf("ai: entity=%s script onExit error: %v\n", e, err)
				return
			}
			if err := rt.runPhase("enter", change.To, engine); err != nil {
				fmt.Printf("ai: entity=%s script onEnter error: %v\n", e, err)
				return
			}
		}
	})
}

func (s *AIScriptSystem) getScriptRuntime(e ecs.Entity, path string) (*aiScriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if s.scriptCache == nil {
		s.scriptCache = map[ecs.Entity]*aiScriptRuntime{}
	}
	if rt, ok := s.scriptCache[e]; ok && rt.scriptPath == path {
		return rt, nil
	}

	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + aiLifecycleDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	rt := &aiScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.scriptCache[e] = rt
	return rt, nil
}

func (rt *aiScriptRuntime) runPhase(phase string, state combat.BrainState, engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", state.String()); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (s *AIScriptSystem) buildEngine(w *ecs.World, e ecs.Entity) *tengo.ImmutableMap {
	cues := cuesOrNop(s.Cues)
	values := map[string]tengo.Object{
		"id": &tengo.Int{Value: int64(e.CombatID())},
	}

	values["cue"] = &tengo.UserFunction{Name: "cue", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		if name == "" {
			return tengo.FalseValue, nil
		}
		cues.PlayCue(name, positionOf(w, e))
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			str, _ := tengo.ToString(a)
			parts = append(parts, str)
		}
		fmt.Printf("ai: entity=%s %s\n", e, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["set_speed_scale"] = &tengo.UserFunction{Name: "set_speed_scale", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		scale, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		brain, ok := ecs.Get(w, e, component.BrainComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		brain.SetSpeedScale(scale)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
