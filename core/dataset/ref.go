package dataset

import (
	"context"
	"fmt"
	"strings"

	apperrors "row-merger/core/errors"
	"row-merger/core/storage"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	// ObjectScheme prefixes references to objects in the configured bucket.
	ObjectScheme = "s3://"
	// TableScheme prefixes references to SQL tables.
	TableScheme = "table://"
)

// Kind is the backend a reference points at.
type Kind string

const (
	KindFile   Kind = "file"
	KindObject Kind = "object"
	KindTable  Kind = "table"
)

// Ref is a parsed dataset reference.
type Ref struct {
	Kind   Kind
	Target string
}

// ParseRef parses `s3://key`, `table://name` or a plain file path.
func ParseRef(ref string) (Ref, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return Ref{}, apperrors.NewValidationError("ref", "must not be empty")
	case strings.HasPrefix(ref, ObjectScheme):
		key := strings.TrimLeft(strings.TrimPrefix(ref, ObjectScheme), "/")
		if key == "" || strings.HasSuffix(key, "/") {
			return Ref{}, apperrors.NewValidationError("ref", fmt.Sprintf("%q does not name an object", ref))
		}
		return Ref{Kind: KindObject, Target: key}, nil
	case strings.HasPrefix(ref, TableScheme):
		table := strings.TrimPrefix(ref, TableScheme)
		if table == "" {
			return Ref{}, apperrors.NewValidationError("ref", fmt.Sprintf("%q does not name a table", ref))
		}
		return Ref{Kind: KindTable, Target: table}, nil
	case strings.Contains(ref, "://"):
		return Ref{}, apperrors.NewValidationError("ref", fmt.Sprintf("unsupported scheme in %q", ref))
	default:
		return Ref{Kind: KindFile, Target: ref}, nil
	}
}

// Resolver turns references into sources and sinks backed by the configured services.
// A nil Storage or DB makes the matching reference kind unavailable.
type Resolver struct {
	Storage storage.Client
	Bucket  string
	DB      *gorm.DB
	Options ReadOptions
	// AllowFiles permits local file references. The HTTP API leaves it off.
	AllowFiles bool
	// TablePrefix, when set, limits table outputs to names starting with it.
	TablePrefix string
	// Protected lists tables that can be read but never replaced by a sink.
	Protected []string
}

// Protect marks tables as read-only for sinks.
func (r *Resolver) Protect(tables ...string) {
	r.Protected = append(r.Protected, tables...)
}

// Source resolves ref into a Source.
func (r *Resolver) Source(ref string) (Source, error) {
	parsed, err := r.parse(ref)
	if err != nil {
		return nil, err
	}
	switch parsed.Kind {
	case KindObject:
		return &ObjectSource{Client: r.Storage, Bucket: r.Bucket, Key: parsed.Target, Options: r.Options}, nil
	case KindTable:
		return &TableSource{DB: r.DB, Table: parsed.Target}, nil
	default:
		return &FileSource{Path: parsed.Target, Options: r.Options}, nil
	}
}

// Sink resolves ref into a Sink.
func (r *Resolver) Sink(ref string) (Sink, error) {
	parsed, err := r.parse(ref)
	if err != nil {
		return nil, err
	}
	switch parsed.Kind {
	case KindObject:
		return &ObjectSink{Client: r.Storage, Bucket: r.Bucket, Key: parsed.Target, Delimiter: r.Options.Delimiter}, nil
	case KindTable:
		if err := r.checkOutputTable(parsed.Target); err != nil {
			return nil, err
		}
		return &TableSink{DB: r.DB, Table: parsed.Target}, nil
	default:
		return &FileSink{Path: parsed.Target, Delimiter: r.Options.Delimiter}, nil
	}
}

func (r *Resolver) parse(ref string) (Ref, error) {
	parsed, err := ParseRef(ref)
	if err != nil {
		return Ref{}, err
	}
	switch parsed.Kind {
	case KindObject:
		if r.Storage == nil {
			return Ref{}, apperrors.NewValidationError("ref", "object storage is not configured")
		}
	case KindTable:
		if r.DB == nil {
			return Ref{}, apperrors.NewValidationError("ref", "database is not configured")
		}
	case KindFile:
		if !r.AllowFiles {
			return Ref{}, apperrors.NewValidationError("ref", "file references are not allowed here")
		}
	}
	return parsed, nil
}

// checkOutputTable rejects tables a sink must not replace. Names are compared
// case-insensitively since both SQL backends fold table names on some platforms.
func (r *Resolver) checkOutputTable(table string) error {
	for _, p := range r.Protected {
		if strings.EqualFold(table, p) {
			return apperrors.NewValidationError("ref", fmt.Sprintf("table %q is reserved", table))
		}
	}
	if r.TablePrefix != "" && !strings.HasPrefix(strings.ToLower(table), strings.ToLower(r.TablePrefix)) {
		return apperrors.NewValidationError("ref", fmt.Sprintf("output tables must start with %q", r.TablePrefix))
	}
	return nil
}

// LoadPair loads the old and new datasets concurrently.
func LoadPair(ctx context.Context, oldSrc, newSrc Source) (*Dataset, *Dataset, error) {
	var oldDS, newDS *Dataset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds, err := oldSrc.Load(gctx)
		if err != nil {
			return err
		}
		oldDS = ds
		return nil
	})
	g.Go(func() error {
		ds, err := newSrc.Load(gctx)
		if err != nil {
			return err
		}
		newDS = ds
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return oldDS, newDS, nil
}
