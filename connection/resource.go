package connection

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/clbanning/mxj"

	"github.com/arloliu/widecol/errs"
)

// StringToURL converts a file path or URL string to a URL.
//
// The empty string yields nil. Strings starting with http://, https:// or
// file:// (case-insensitive) are parsed as URLs; anything else is treated as
// a file path.
func StringToURL(pathOrURL string) (*url.URL, error) {
	if pathOrURL == "" {
		return nil, nil //nolint:nilnil
	}

	lower := strings.ToLower(pathOrURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "file://") {
		u, err := url.Parse(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", errs.ErrInvalidResource, pathOrURL, err)
		}
		u.Scheme = strings.ToLower(u.Scheme)

		return u, nil
	}

	return &url.URL{Scheme: "file", Path: filepath.ToSlash(pathOrURL)}, nil
}

// filePath returns the local path of a file URL. A host part other than
// localhost is the first segment of a relative path, as in file://conf/x.xml.
func filePath(u *url.URL) string {
	p := u.Path
	if u.Host != "" && u.Host != "localhost" {
		p = u.Host + p
	}

	return filepath.FromSlash(p)
}

func (r *resolver) open(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	switch u.Scheme {
	case "file":
		f, err := os.Open(filePath(u))
		if err != nil {
			return nil, fmt.Errorf("open resource %s: %w", u, err)
		}

		return f, nil
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("fetch resource %s: %w", u, err)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch resource %s: %w", u, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch resource %s: %w: status %s", u, errs.ErrInvalidResource, resp.Status)
		}

		return resp.Body, nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedScheme, u.Scheme)
	}
}

// property is one <property> element of a configuration resource.
type property struct {
	Name  string
	Value string
	Final bool
}

// parseResource reads a Hadoop-style configuration document:
//
//	<configuration>
//	  <property><name>k</name><value>v</value><final>true</final></property>
//	</configuration>
func parseResource(r io.Reader) ([]property, error) {
	m, err := mxj.NewMapXmlReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidResource, err)
	}

	if _, ok := m["configuration"]; !ok {
		return nil, fmt.Errorf("%w: root element is not <configuration>", errs.ErrInvalidResource)
	}

	nodes, err := m.ValuesForPath("configuration.property")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidResource, err)
	}

	props := make([]property, 0, len(nodes))
	for _, node := range nodes {
		fields, ok := node.(map[string]any)
		if !ok {
			continue
		}

		name := strings.TrimSpace(text(fields["name"]))
		if name == "" {
			continue
		}

		props = append(props, property{
			Name:  name,
			Value: strings.TrimSpace(text(fields["value"])),
			Final: strings.EqualFold(strings.TrimSpace(text(fields["final"])), "true"),
		})
	}

	return props, nil
}

// text extracts character data from an mxj node; elements carrying
// attributes keep their text under "#text".
func text(node any) string {
	switch v := node.(type) {
	case string:
		return v
	case map[string]any:
		if t, ok := v["#text"].(string); ok {
			return t
		}
	case []any:
		// repeated element, the last occurrence wins
		if len(v) > 0 {
			return text(v[len(v)-1])
		}
	}

	return ""
}
