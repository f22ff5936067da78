package script

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// check(subject, expected, name=None) -> bool
//
// The subject is an expression string or a callable. Its result, or the
// error kind it raised, is compared to the expected value.
func (m *Machine) check(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var subject, expected, nameValue starlark.Value
	err := starlark.UnpackArgs(b.Name(), args, kwargs, "subject", &subject, "expected", &expected, "name?", &nameValue)
	if err != nil {
		return nil, err
	}

	var name string
	var result starlark.Value
	var failure error
	switch subject := subject.(type) {
	case starlark.String:
		name = string(subject)
		result, failure = starlark.EvalOptions(fileOptions, thread, "<check>", name, m.modules)
	case starlark.Callable:
		name = subject.Name()
		result, failure = starlark.Call(thread, subject, nil, nil)
	default:
		return nil, fmt.Errorf("%w: %s: got %s, want string or callable", ErrType, b.Name(), subject.Type())
	}

	if nameValue != nil && nameValue != starlark.None {
		name, err = asString(b.Name(), nameValue)
		if err != nil {
			return nil, err
		}
	}

	if failure != nil {
		if m.Verbose {
			m.printf("check: %s: %v\n", name, failure)
		}
		result = kindOf(failure)
	}

	ok, err := starlark.Equal(result, expected)
	if err != nil {
		ok = false
	}

	if ok {
		m.Report.Passed++
		m.printf("Passed - %s == %s\n", name, expected.String())
	} else {
		m.Report.Failed++
		m.printf("Failed - %s == %s. Expected: %s\n", name, result.String(), expected.String())
	}

	return starlark.Bool(ok), nil
}
