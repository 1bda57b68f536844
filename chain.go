package bemtest

import (
	"github.com/bembuild/bemtest/log"
	"github.com/bembuild/bemtest/util"
)

// step is one deferred chain item: an action, an assertion or a custom check.
type step struct {
	name string
	run  func() error
}

// enqueue appends a deferred operation to the session chain.
func (s *Session) enqueue(name string, run func() error) {
	s.guard()
	s.chain = append(s.chain, step{name: name, run: run})
}

// drain executes the chain strictly in declaration order, short-circuiting on the
// first failure. It returns that failure, or nil when every step succeeded.
func (s *Session) drain() error {
	for i, st := range s.chain {
		log.Debugf("chain: step %d/%d: %s", i+1, len(s.chain), st.name)
		if err := st.run(); err != nil {
			log.Debugf("chain: step %d (%s) failed: %v", i+1, st.name, err)
			return err
		}
	}
	log.Infof("chain: drained %s", util.Quantify(len(s.chain), "step", "steps"))
	return nil
}
