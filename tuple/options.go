package tuple

import (
	"github.com/sirupsen/logrus"

	"github.com/arloliu/widecol/codec"
	"github.com/arloliu/widecol/errs"
	"github.com/arloliu/widecol/internal/options"
)

// MissingFamilyPolicy decides what a restricted session does when a filtered
// family is absent from a row.
type MissingFamilyPolicy uint8

const (
	// MissingFamilySkip emits no tuples for the absent family.
	MissingFamilySkip MissingFamilyPolicy = iota
	// MissingFamilyError fails the row with *errs.MissingFamilyError.
	MissingFamilyError
)

func (p MissingFamilyPolicy) String() string {
	switch p {
	case MissingFamilySkip:
		return "skip"
	case MissingFamilyError:
		return "error"
	default:
		return "unknown"
	}
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithFamilySeparator sets the separator of Mapping.TupleFamilies.
// Defaults to schema.DefaultFamilySeparator.
func WithFamilySeparator(sep string) DecoderOption {
	return options.New(func(d *Decoder) error {
		if sep == "" {
			return errs.NewConfigurationError("family separator", errs.ErrInvalidSeparator)
		}
		d.separator = sep

		return nil
	})
}

// WithMissingFamilyPolicy sets the policy for filtered families absent from
// a row. Defaults to MissingFamilySkip.
func WithMissingFamilyPolicy(policy MissingFamilyPolicy) DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.missingFamily = policy
	})
}

// WithLogger sets the logger. Defaults to logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) DecoderOption {
	return options.NoError(func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	})
}

// WithCodec sets the field codec. Defaults to codec.Default().
func WithCodec(c codec.Codec) DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.codec = c
	})
}

// WithFreshTuples makes Decode return a newly allocated slice on every call
// instead of the session's reusable buffer.
func WithFreshTuples(enabled bool) DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.freshTuples = enabled
	})
}

// WithInitialCapacity sets the initial capacity of the reusable buffer.
func WithInitialCapacity(n int) DecoderOption {
	return options.NoError(func(d *Decoder) {
		if n > 0 {
			d.initialCapacity = n
		}
	})
}
