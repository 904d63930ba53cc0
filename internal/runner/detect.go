package runner

import (
	"os/exec"

	"forge/internal/logging"
)

// Detector probes the host once at construction and remembers, per
// language, whether a runtime is available and how to invoke it. The
// resulting map is immutable after Detect runs (spec §4.1, §5: "called
// once per core instance at construction").
type Detector struct {
	runtimes map[Language]Runtime
}

// Detect probes PATH for every supported language's interpreter or
// compiler and returns an immutable Detector. Pure function of the
// environment: no side effects beyond the PATH lookups exec.LookPath
// performs and the debug lines written when file logging is enabled.
func Detect() *Detector {
	timer := logging.StartTimer(logging.CategoryRunner, "runtime detection")
	defer timer.Stop()

	d := &Detector{runtimes: make(map[Language]Runtime, len(AllLanguages))}
	for _, lang := range AllLanguages {
		d.runtimes[lang] = detectOne(lang)
	}
	return d
}

func detectOne(lang Language) Runtime {
	s, ok := specs[lang]
	if !ok {
		return Runtime{Language: lang, Available: false}
	}

	for i, c := range s.candidates {
		path, err := exec.LookPath(c.binary)
		if err != nil {
			continue
		}
		rt := Runtime{
			Language:  lang,
			Available: true,
			Compiled:  c.compiled,
		}
		if c.compiled {
			rt.CommandTemplate = []string{path}
			rt.CompileArgs = c.compileArgs
		} else {
			rt.CommandTemplate = append([]string{path}, c.runArgs("{script}")...)
		}
		if len(s.candidates) > 1 {
			rt.Preferred = c.binary
		}
		if i > 0 {
			logging.Get(logging.CategoryRunner).Debug("preferred runtime for %s unavailable, fell back to %s", lang, path)
		} else {
			logging.Get(logging.CategoryRunner).Debug("detected %s via %s", lang, path)
		}
		return rt
	}
	logging.Get(logging.CategoryRunner).Debug("no runtime found for %s", lang)
	return Runtime{Language: lang, Available: false}
}

// Lookup returns the detected Runtime for lang and whether detection
// recorded it as available.
func (d *Detector) Lookup(lang Language) (Runtime, bool) {
	rt, ok := d.runtimes[lang]
	return rt, ok && rt.Available
}

// Runtimes returns a copy of the full detection map, keyed by language.
func (d *Detector) Runtimes() map[Language]Runtime {
	out := make(map[Language]Runtime, len(d.runtimes))
	for k, v := range d.runtimes {
		out[k] = v
	}
	return out
}
