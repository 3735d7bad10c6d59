// Package connection resolves the client configuration of a wide-column
// store: default and site resources, a ZooKeeper quorum and client port.
//
// Resolution order:
//
//  1. The default resource: Config.DefaultConfig, or DefaultResource found on
//     Config.SearchPaths.
//  2. The site resource: Config.SiteConfig, or SiteResource found on
//     Config.SearchPaths.
//  3. Config.Hosts overrides QuorumKey when non-empty.
//  4. Config.Port overrides ClientPortKey when it is an integer; any other
//     non-empty value is logged and ignored.
//
// No connection is opened; the result is the property set a client would be
// created with.
package connection

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/widecol/internal/options"
)

// Well-known resource names and property keys.
const (
	DefaultResource = "hbase-default.xml"
	SiteResource    = "hbase-site.xml"

	QuorumKey     = "hbase.zookeeper.quorum"
	ClientPortKey = "hbase.zookeeper.property.clientPort"
)

// Config describes where the client configuration comes from.
type Config struct {
	// Hosts is a comma-separated ZooKeeper host list.
	Hosts string
	// Port is the ZooKeeper client port, as entered by the user.
	Port string
	// SiteConfig and DefaultConfig are file paths or URLs; see StringToURL.
	SiteConfig    string
	DefaultConfig string
	// SearchPaths are directories searched for the well-known resources when
	// no explicit location is given.
	SearchPaths []string
}

type resolver struct {
	logger logrus.FieldLogger
	client *http.Client
}

// Option configures Resolve.
type Option = options.Option[*resolver]

// WithLogger sets the logger. Defaults to logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return options.NoError(func(r *resolver) {
		if logger != nil {
			r.logger = logger
		}
	})
}

// WithHTTPClient sets the client used for http and https resources.
// Defaults to http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return options.NoError(func(r *resolver) {
		if client != nil {
			r.client = client
		}
	})
}

// Resolve builds the client properties described by cfg.
//
// Parameters:
//   - ctx: Bounds remote resource fetches
//   - cfg: Resource locations and overrides
//   - opts: Optional logger and HTTP client
//
// Returns:
//   - *Properties: Merged properties
//   - error: An explicit resource that cannot be read or parsed; a missing
//     well-known resource on the search paths is not an error
func Resolve(ctx context.Context, cfg Config, opts ...Option) (*Properties, error) {
	r := &resolver{
		logger: logrus.StandardLogger(),
		client: http.DefaultClient,
	}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	props := NewProperties()

	if err := r.addResource(ctx, props, cfg.DefaultConfig, DefaultResource, cfg.SearchPaths); err != nil {
		return nil, err
	}
	if err := r.addResource(ctx, props, cfg.SiteConfig, SiteResource, cfg.SearchPaths); err != nil {
		return nil, err
	}

	if hosts := strings.TrimSpace(cfg.Hosts); hosts != "" {
		props.Set(QuorumKey, hosts)
	}

	if port := strings.TrimSpace(cfg.Port); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			r.logger.WithField("port", port).Warn("unable to parse zookeeper port, keeping configured value")
		} else {
			props.SetInt(ClientPortKey, n)
		}
	}

	return props, nil
}

func (r *resolver) addResource(ctx context.Context, props *Properties, location, wellKnown string, searchPaths []string) error {
	if location == "" {
		path, ok := findResource(wellKnown, searchPaths)
		if !ok {
			r.logger.WithField("resource", wellKnown).Debug("resource not found on search paths, skipping")
			return nil
		}
		location = path
	}

	u, err := StringToURL(location)
	if err != nil {
		return err
	}

	rc, err := r.open(ctx, u)
	if err != nil {
		return err
	}
	defer rc.Close()

	loaded, err := parseResource(rc)
	if err != nil {
		return fmt.Errorf("load resource %s: %w", u, err)
	}

	source := u.String()
	for _, prop := range loaded {
		if !props.merge(prop, source) {
			r.logger.WithFields(logrus.Fields{
				"key":      prop.Name,
				"resource": source,
			}).Warn("attempt to override final property, ignoring")
		}
	}

	r.logger.WithFields(logrus.Fields{
		"resource":   source,
		"properties": len(loaded),
	}).Debug("loaded configuration resource")

	return nil
}

func findResource(name string, searchPaths []string) (string, bool) {
	for _, dir := range searchPaths {
		path := filepath.Join(dir, name)

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}

	return "", false
}
