// Package tuple flattens wide-column rows into flat tuples, one per stored
// (family, qualifier) cell.
//
// A Decoder is one decoding session. Its first Decode call resolves the role
// positions against the output schema and, when the mapping lists tuple
// families, builds the family filter; later calls reuse both.
//
//	dec, _ := tuple.NewDecoder(outputSchema)
//	for _, r := range rows {
//	    tuples, err := dec.Decode(r, mapping, descriptors)
//	    if err != nil {
//	        return err
//	    }
//	    for _, t := range tuples {
//	        emit(t) // forward before the next Decode call
//	    }
//	}
//
// Each emitted tuple carries the value stored at the greatest timestamp of its
// qualifier, and that timestamp as a raw int64.
//
// Note: a Decoder is NOT thread-safe. Parallel pipeline partitions each own a
// Decoder.
package tuple

import (
	"errors"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/widecol/codec"
	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/internal/options"
	"github.com/arloliu/widecol/internal/pool"
	"github.com/arloliu/widecol/layout"
	"github.com/arloliu/widecol/row"
	"github.com/arloliu/widecol/schema"
)

const defaultInitialCapacity = 64

// Tuple is one output row. Its length equals the output schema size and
// positions not bound to a role are nil.
type Tuple []any

// Stats counts the work of a session.
type Stats struct {
	Rows            int
	Tuples          int
	MissingFamilies int
}

// Decoder is a session-scoped tuple decoder.
type Decoder struct {
	schema          layout.Schema
	codec           codec.Codec
	logger          logrus.FieldLogger
	separator       string
	missingFamily   MissingFamilyPolicy
	freshTuples     bool
	initialCapacity int

	// session state, populated by the first Decode call
	initialized bool
	initErr     error
	roles       layout.RoleIndex
	filter      FamilyFilter
	aliasDescs  *schema.RoleDescriptors
	out         *pool.Buffer[Tuple]
	stats       Stats
}

// NewDecoder creates a decoding session for tuples shaped by s.
//
// Parameters:
//   - s: Output schema; must not be nil
//   - opts: Optional configuration (separator, missing family policy, logger, codec)
//
// Returns:
//   - *Decoder: Session ready for its first Decode call
//   - error: *errs.ConfigurationError for a nil schema or invalid option
func NewDecoder(s layout.Schema, opts ...DecoderOption) (*Decoder, error) {
	if s == nil {
		return nil, errs.NewConfigurationError("new decoder", errs.ErrNilSchema)
	}
	if typed, ok := s.(*schema.OutputSchema); ok && typed == nil {
		return nil, errs.NewConfigurationError("new decoder", errs.ErrNilSchema)
	}

	d := &Decoder{
		schema:          s,
		codec:           codec.Default(),
		logger:          logrus.StandardLogger(),
		separator:       schema.DefaultFamilySeparator,
		missingFamily:   MissingFamilySkip,
		initialCapacity: defaultInitialCapacity,
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Decode flattens r into tuples.
//
// The first call of the session resolves the layout and family filter from m
// and validates descs; a failure there is a *errs.ConfigurationError and is
// returned by every later call. Afterwards the reusable buffer is cleared,
// not reallocated, at the start of each call.
//
// In restricted mode (m.TupleFamilies lists families) the filter's order is
// the emission order and the family slot holds the filter label verbatim. In
// unrestricted mode every family of r is emitted in row order and the family
// slot holds the family bytes decoded with descs.Family.
//
// Parameters:
//   - r: Source row; read only, not retained
//   - m: Table mapping; must be the same for the whole session
//   - descs: Descriptors for the Family, Column and Value roles
//
// Returns:
//   - []Tuple: Tuples for r, valid until the next Decode call unless
//     WithFreshTuples is set; each Tuple is newly allocated
//   - error: *errs.DecodeError, *errs.MissingFamilyError (MissingFamilyError
//     policy only) or *errs.ConfigurationError
func (d *Decoder) Decode(r *row.Row, m schema.Mapping, descs schema.RoleDescriptors) ([]Tuple, error) {
	if !d.initialized {
		d.init(m, descs)
	} else {
		d.out.Reset()
	}

	if d.initErr != nil {
		return nil, d.initErr
	}

	if r == nil {
		return nil, errs.ErrNilRow
	}

	key, err := d.codec.DecodeKey(r.Key, m)
	if err != nil {
		return nil, err
	}

	if d.filter.Len() > 0 {
		err = d.decodeRestricted(r, key, descs)
	} else {
		err = d.decodeAll(r, key, descs)
	}

	if err != nil {
		d.out.Reset()
		return nil, err
	}

	d.stats.Rows++
	d.stats.Tuples += d.out.Len()

	if d.freshTuples {
		return slices.Clone(d.out.Items()), nil
	}

	return d.out.Items(), nil
}

// DecodeByAlias decodes r with role descriptors taken from an alias-keyed
// catalog view. The descriptors are picked once per session.
func (d *Decoder) DecodeByAlias(r *row.Row, m schema.Mapping, byAlias map[string]schema.FieldDescriptor) ([]Tuple, error) {
	if d.aliasDescs == nil {
		descs := schema.RoleDescriptorsFromAliases(byAlias)
		d.aliasDescs = &descs
	}

	return d.Decode(r, m, *d.aliasDescs)
}

func (d *Decoder) init(m schema.Mapping, descs schema.RoleDescriptors) {
	d.initialized = true
	d.out = pool.NewBuffer[Tuple](d.initialCapacity)
	d.roles = layout.Resolve(d.schema, m)
	d.filter = NewFamilyFilter(m.TupleFamilies, d.separator)

	required := []schema.Role{schema.RoleColumn, schema.RoleValue}
	if d.filter.Len() == 0 {
		required = append(required, schema.RoleFamily)
	}

	for _, role := range required {
		if !d.roles.Has(role) {
			continue
		}
		desc, _ := descs.For(role)
		if !desc.Type.IsValid() {
			d.initErr = errs.NewConfigurationError("descriptor for "+role.String(), errs.ErrMissingDescriptor)
			return
		}
	}

	d.logger.WithFields(logrus.Fields{
		"table":    m.TableName,
		"mapping":  m.MappingName,
		"layout":   d.roles.String(),
		"families": d.filter.Labels(),
	}).Debug("tuple decoder session initialized")
}

func (d *Decoder) decodeRestricted(r *row.Row, key any, descs schema.RoleDescriptors) error {
	entries := d.filter.Entries()

	count := 0
	for _, e := range entries {
		if f, ok := r.Family(e.Raw); ok {
			count += len(f.Qualifiers)
		}
	}
	slab := d.newSlab(count)

	for _, e := range entries {
		f, ok := r.Family(e.Raw)
		if !ok {
			d.stats.MissingFamilies++
			if d.missingFamily == MissingFamilyError {
				return &errs.MissingFamilyError{Family: e.Label}
			}
			d.logger.WithField("family", e.Label).Debug("filtered family not present in row")

			continue
		}

		if err := d.emitFamily(f, key, e.Label, descs, &slab); err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeAll(r *row.Row, key any, descs schema.RoleDescriptors) error {
	slab := d.newSlab(r.CellCount())
	familyPos := d.roles.Position(schema.RoleFamily)

	for i := range r.Families {
		f := &r.Families[i]

		var family any
		if familyPos != layout.Absent {
			v, err := d.codec.Decode(f.Name, descs.Family)
			if err != nil {
				return roleError(err, schema.RoleFamily, descs.Family)
			}
			family = v
		}

		if err := d.emitFamily(f, key, family, descs, &slab); err != nil {
			return err
		}
	}

	return nil
}

// newSlab allocates the backing array for count tuples in one allocation.
// Ownership of every tuple cut from it passes to the caller.
func (d *Decoder) newSlab(count int) []any {
	d.out.Grow(count)
	return make([]any, count*d.schema.Len())
}

func (d *Decoder) emitFamily(f *row.Family, key, family any, descs schema.RoleDescriptors, slab *[]any) error {
	width := d.schema.Len()
	keyPos := d.roles.Position(schema.RoleKey)
	familyPos := d.roles.Position(schema.RoleFamily)
	columnPos := d.roles.Position(schema.RoleColumn)
	valuePos := d.roles.Position(schema.RoleValue)
	tsPos := d.roles.Position(schema.RoleTimestamp)

	for i := range f.Qualifiers {
		q := &f.Qualifiers[i]
		latest, ok := q.MostRecent()
		if !ok {
			continue
		}

		var t Tuple
		if len(*slab) >= width {
			t = Tuple((*slab)[:width:width])
			*slab = (*slab)[width:]
		} else {
			t = make(Tuple, width)
		}

		if keyPos != layout.Absent {
			t[keyPos] = key
		}
		if tsPos != layout.Absent {
			t[tsPos] = latest.Timestamp
		}
		if columnPos != layout.Absent {
			v, err := d.codec.Decode(q.Name, descs.Column)
			if err != nil {
				return roleError(err, schema.RoleColumn, descs.Column)
			}
			t[columnPos] = v
		}
		if valuePos != layout.Absent {
			v, err := d.codec.Decode(latest.Value, descs.Value)
			if err != nil {
				return roleError(err, schema.RoleValue, descs.Value)
			}
			t[valuePos] = v
		}
		if familyPos != layout.Absent {
			t[familyPos] = family
		}

		d.out.Append(t)
	}

	return nil
}

func roleError(err error, role schema.Role, desc schema.FieldDescriptor) error {
	var de *errs.DecodeError
	if errors.As(err, &de) {
		de.Role = role.String()
		de.Field = desc.Name(role.String())
	}

	return err
}

// Layout returns the resolved role positions and whether the session has been
// initialized.
func (d *Decoder) Layout() (layout.RoleIndex, bool) {
	return d.roles, d.initialized
}

// Filter returns the session's family filter; it is empty in unrestricted
// mode or before the first Decode call.
func (d *Decoder) Filter() FamilyFilter {
	return d.filter
}

// Stats returns the session counters.
func (d *Decoder) Stats() Stats {
	return d.stats
}
