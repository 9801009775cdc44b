package hlc

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
)

var (
	ErrUnknownProcedure = errors.New("unknown procedure")
	ErrArgumentCount    = errors.New("wrong number of arguments")
)

// ProcedureFunc implements a named operation, arguments and result are in text form
type ProcedureFunc func(c *Clock, args []string) (string, error)

type procedure struct {
	minArgs int
	maxArgs int
	fn      ProcedureFunc
}

// Procedures exposes the clock as named operations for an embedding system, such as
// a database extension or an RPC endpoint, that passes arguments as strings.
type Procedures struct {
	clock      *Clock
	procedures atomic.Pointer[map[string]procedure]
	mu         sync.Mutex
}

// NewProcedures creates the registry with the built-in hlc_* operations
func NewProcedures(clock *Clock) *Procedures {
	p := &Procedures{clock: clock}
	initialMap := make(map[string]procedure)
	p.procedures.Store(&initialMap)

	p.Register("hlc_zero", 1, 1, func(c *Clock, args []string) (string, error) {
		return c.Zero(args[0]).String(), nil
	})
	p.Register("hlc_from_date", 2, 2, func(c *Clock, args []string) (string, error) {
		return tsResult(c.FromDate(args[1], args[0]))
	})
	p.Register("hlc_now", 1, 1, func(c *Clock, args []string) (string, error) {
		return c.Now(args[0]).String(), nil
	})
	p.Register("hlc_parse", 1, 1, func(c *Clock, args []string) (string, error) {
		return tsResult(Parse(args[0]))
	})
	p.Register("hlc_to_string", 1, 1, func(c *Clock, args []string) (string, error) {
		return tsResult(Parse(args[0]))
	})
	p.Register("hlc_increment", 1, 2, func(c *Clock, args []string) (string, error) {
		if len(args) == 2 && args[1] != "" {
			return tsResult(c.IncrementString(args[0], args[1]))
		}
		return tsResult(c.Increment(args[0]))
	})
	p.Register("hlc_merge", 2, 3, func(c *Clock, args []string) (string, error) {
		if len(args) == 3 && args[2] != "" {
			return tsResult(c.MergeString(args[0], args[1], args[2]))
		}
		remote, err := Parse(args[1])
		if err != nil {
			return "", err
		}
		return tsResult(c.Merge(args[0], remote))
	})
	p.Register("hlc_increment_simple", 1, 1, func(c *Clock, args []string) (string, error) {
		return c.IncrementOrNow(args[0]).String(), nil
	})
	p.Register("hlc_merge_simple", 2, 2, func(c *Clock, args []string) (string, error) {
		remote, err := Parse(args[1])
		if err != nil {
			return "", err
		}
		return c.MergeOrNow(args[0], remote).String(), nil
	})
	p.Register("hlc_compare", 2, 2, comparison(func(a, b Timestamp) string {
		return strconv.Itoa(Compare(a, b))
	}))
	p.Register("hlc_lt", 2, 2, comparison(func(a, b Timestamp) string { return strconv.FormatBool(Lt(a, b)) }))
	p.Register("hlc_gt", 2, 2, comparison(func(a, b Timestamp) string { return strconv.FormatBool(Gt(a, b)) }))
	p.Register("hlc_eq", 2, 2, comparison(func(a, b Timestamp) string { return strconv.FormatBool(Eq(a, b)) }))
	p.Register("hlc_lte", 2, 2, comparison(func(a, b Timestamp) string { return strconv.FormatBool(Lte(a, b)) }))
	p.Register("hlc_gte", 2, 2, comparison(func(a, b Timestamp) string { return strconv.FormatBool(Gte(a, b)) }))
	p.Register("hlc_reset", 1, 1, func(c *Clock, args []string) (string, error) {
		c.Reset(args[0])
		return "", nil
	})
	p.Register("hlc_get_state", 1, 1, func(c *Clock, args []string) (string, error) {
		return c.GetState(args[0]).String(), nil
	})

	return p
}

func tsResult(ts Timestamp, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return ts.String(), nil
}

func comparison(fn func(a, b Timestamp) string) ProcedureFunc {
	return func(c *Clock, args []string) (string, error) {
		a, err := Parse(args[0])
		if err != nil {
			return "", err
		}
		b, err := Parse(args[1])
		if err != nil {
			return "", err
		}
		return fn(a, b), nil
	}
}

// Register adds a procedure accepting between minArgs and maxArgs arguments, registering a name twice panics
func (p *Procedures) Register(name string, minArgs, maxArgs int, fn ProcedureFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.procedures.Load()
	if _, ok := (*current)[name]; ok {
		panic(fmt.Sprintf("Procedure already registered: %s", name))
	}

	next := make(map[string]procedure, len(*current)+1)
	for k, v := range *current {
		next[k] = v
	}
	next[name] = procedure{minArgs: minArgs, maxArgs: maxArgs, fn: fn}

	p.procedures.Store(&next)
}

// Unregister removes a procedure, returning false if it wasn't registered
func (p *Procedures) Unregister(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.procedures.Load()
	if _, ok := (*current)[name]; !ok {
		return false
	}

	next := make(map[string]procedure, len(*current))
	for k, v := range *current {
		if k != name {
			next[k] = v
		}
	}

	p.procedures.Store(&next)
	return true
}

// Call invokes the named procedure
func (p *Procedures) Call(name string, args ...string) (string, error) {
	proc, ok := (*p.procedures.Load())[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProcedure, name)
	}

	if len(args) < proc.minArgs || len(args) > proc.maxArgs {
		return "", fmt.Errorf("%w: %s takes %s, got %d", ErrArgumentCount, name, argRange(proc.minArgs, proc.maxArgs), len(args))
	}

	return proc.fn(p.clock, args)
}

// Names returns the sorted procedure names
func (p *Procedures) Names() []string {
	current := p.procedures.Load()
	names := make([]string, 0, len(*current))
	for name := range *current {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func argRange(min, max int) string {
	if min == max {
		return strconv.Itoa(min)
	}
	return fmt.Sprintf("%d to %d", min, max)
}
