package resolver

import (
	"fmt"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/effuse/effuse/src/client"
)

// Option is a function that applies an option to a resolver created by
// New().
type Option func(*Resolver) error

// UseLogger returns an option that sets the logger used by the resolver
// and any clients it creates.
func UseLogger(l logging.Logger) Option {
	return func(r *Resolver) error {
		r.logger = l
		return nil
	}
}

// UseConfig returns an option that sets the unicast nameserver
// configuration.
func UseConfig(c *Config) Option {
	return func(r *Resolver) error {
		r.config = c
		return nil
	}
}

// UseClient returns an option that sets the unicast client, instead of
// dialing one from the configuration.
func UseClient(c *client.Client) Option {
	return func(r *Resolver) error {
		r.unicast = c
		return nil
	}
}

// UseMulticastClient returns an option that sets the client used for
// multicast names. Without one, multicast names are queried via the
// unicast nameserver like any other name.
func UseMulticastClient(c *client.Client) Option {
	return func(r *Resolver) error {
		r.multicast = c
		return nil
	}
}

// EnableMulticast is an option that dials a one-shot multicast DNS client
// for names under ".local.".
func EnableMulticast(r *Resolver) error {
	c, err := client.DialMulticast(client.UseLogger(r.logger))
	if err != nil {
		return err
	}

	r.multicast = c
	return nil
}

// UseMulticastWait returns an option that sets how long multicast queries
// gather responses before returning.
func UseMulticastWait(d time.Duration) Option {
	return func(r *Resolver) error {
		if d <= 0 {
			return fmt.Errorf("multicast wait must be positive, got %s", d)
		}

		r.multicastWait = d
		return nil
	}
}

// UseMulticastNames returns an option that sets the predicate deciding
// whether a fully-qualified name is queried via multicast DNS. The default
// matches names under ".local.".
func UseMulticastNames(p func(string) bool) Option {
	return func(r *Resolver) error {
		r.isMulticast = p
		return nil
	}
}
