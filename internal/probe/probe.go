// Package probe classifies probe expressions and executes them.
//
// An expression is one of four variants, tried in priority order:
//
//	:<port>                       bind-and-release port availability check
//	<GET|POST> <url-or-path>      HTTP request, success on 2xx
//	file-updated <max-age> <path> file modification age check
//	anything else                 shell command run in a subshell
package probe

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies a probe variant.
type Kind int

const (
	KindPort Kind = iota
	KindHTTP
	KindFileAge
	KindShell
)

// Probe is a classified probe expression. Raw always holds the original
// expression; the remaining fields are populated per Kind.
type Probe struct {
	Kind   Kind
	Raw    string
	Port   int      // KindPort
	Method string   // KindHTTP
	Target string   // KindHTTP
	Args   []string // KindFileAge: tokens after "file-updated", validated at run time
}

var (
	portRe = regexp.MustCompile(`^:(\d{1,5})$`)
	httpRe = regexp.MustCompile(`^(GET|POST)\s+(\S+)$`)
)

// Classify parses an expression into its variant. Empty expressions and
// out-of-range ports are syntax errors; a malformed file-updated expression
// classifies fine and fails at execution with a usage message instead, so a
// typo still produces a reportable probe result.
func Classify(expr string) (Probe, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return Probe{}, errors.New("empty probe expression")
	}

	if m := portRe.FindStringSubmatch(trimmed); m != nil {
		port, err := strconv.Atoi(m[1])
		if err != nil || port < 1 || port > 65535 {
			return Probe{}, fmt.Errorf("port %s is out of range 1-65535", m[1])
		}
		return Probe{Kind: KindPort, Raw: trimmed, Port: port}, nil
	}

	if m := httpRe.FindStringSubmatch(trimmed); m != nil {
		return Probe{Kind: KindHTTP, Raw: trimmed, Method: m[1], Target: m[2]}, nil
	}

	fields := strings.Fields(trimmed)
	if fields[0] == "file-updated" {
		return Probe{Kind: KindFileAge, Raw: trimmed, Args: fields[1:]}, nil
	}

	return Probe{Kind: KindShell, Raw: trimmed}, nil
}
