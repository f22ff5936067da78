package script

import (
	_ "embed"
	"log"

	"go.starlark.net/starlark"
)

//go:embed selftest.star
var selfTestSource string

// Exec runs a script. src may be nil, in which case filename is read.
func (m *Machine) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	if m.Verbose {
		log.Printf("script: exec %v", filename)
	}

	globals, err = starlark.ExecFileOptions(fileOptions, m.thread, filename, src, m.modules)
	if err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok && m.Verbose {
			log.Printf("script: %v", evalErr.Backtrace())
		}
		return
	}

	return
}

// SelfTest runs the bundled self-test and reports its check() outcomes.
func (m *Machine) SelfTest() (report Report, err error) {
	m.Report = Report{}

	_, err = m.Exec("selftest.star", selfTestSource)
	report = m.Report

	return
}
