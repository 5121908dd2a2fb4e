package sqlclause

import (
	"math"
	"strconv"

	"github.com/roach88/protosql/internal/sqlexpr"
)

const unset = -1

// PaginationBuilder collects a limit and optional defaults, then finalizes
// into a Pagination through exactly one of Build, BuildByOffset or
// BuildByPageNo.
//
// An explicit value that is out of range falls back to the matching
// configured default. With no usable default the build fails with
// sqlexpr.ErrInvalidArgument naming the field.
type PaginationBuilder struct {
	limit         int
	defaultLimit  int
	defaultOffset int
	defaultPageNo int
}

// NewPagination seeds a builder with limit. Pass -1 to rely on the default
// limit.
func NewPagination(limit int) *PaginationBuilder {
	return &PaginationBuilder{
		limit:         limit,
		defaultLimit:  unset,
		defaultOffset: unset,
		defaultPageNo: unset,
	}
}

// SetDefaultLimit sets the limit used when the seeded limit is not positive.
func (p *PaginationBuilder) SetDefaultLimit(limit int) *PaginationBuilder {
	p.defaultLimit = limit
	return p
}

// SetDefaultOffset sets the offset used by Build and by BuildByOffset when
// given a negative offset.
func (p *PaginationBuilder) SetDefaultOffset(offset int) *PaginationBuilder {
	p.defaultOffset = offset
	return p
}

// SetDefaultPageNo sets the 1-based page used by BuildByPageNo when given a
// non-positive page number.
func (p *PaginationBuilder) SetDefaultPageNo(pageNo int) *PaginationBuilder {
	p.defaultPageNo = pageNo
	return p
}

// Build uses the default offset, or 0 when none is configured.
func (p *PaginationBuilder) Build() (*Pagination, error) {
	limit, err := p.resolveLimit()
	if err != nil {
		return nil, err
	}
	offset := 0
	if p.defaultOffset != unset {
		if p.defaultOffset < 0 {
			return nil, sqlexpr.InvalidArgument("default offset must be >= 0, got %d", p.defaultOffset)
		}
		offset = p.defaultOffset
	}
	return &Pagination{limit: limit, offset: offset}, nil
}

// BuildByOffset uses an explicit row offset.
func (p *PaginationBuilder) BuildByOffset(offset int) (*Pagination, error) {
	limit, err := p.resolveLimit()
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		if p.defaultOffset < 0 {
			return nil, sqlexpr.InvalidArgument("offset must be >= 0, got %d", offset)
		}
		offset = p.defaultOffset
	}
	return &Pagination{limit: limit, offset: offset}, nil
}

// BuildByPageNo computes the offset of the 1-based page pageNo.
func (p *PaginationBuilder) BuildByPageNo(pageNo int) (*Pagination, error) {
	limit, err := p.resolveLimit()
	if err != nil {
		return nil, err
	}
	if pageNo <= 0 {
		if p.defaultPageNo <= 0 {
			return nil, sqlexpr.InvalidArgument("page number must be > 0, got %d", pageNo)
		}
		pageNo = p.defaultPageNo
	}
	if pageNo-1 > math.MaxInt/limit {
		return nil, sqlexpr.InvalidArgument("page number %d with limit %d overflows offset", pageNo, limit)
	}
	return &Pagination{limit: limit, offset: (pageNo - 1) * limit}, nil
}

func (p *PaginationBuilder) resolveLimit() (int, error) {
	if p.limit > 0 {
		return p.limit, nil
	}
	if p.defaultLimit > 0 {
		return p.defaultLimit, nil
	}
	return 0, sqlexpr.InvalidArgument("limit must be > 0, got %d", p.limit)
}

// Pagination renders LIMIT n OFFSET m. It has no bound values and is never
// empty; a nil *Pagination is how callers say "no pagination".
type Pagination struct {
	limit  int
	offset int
}

// Limit returns the maximum number of rows.
func (p *Pagination) Limit() int { return p.limit }

// Offset returns the number of rows skipped.
func (p *Pagination) Offset() int { return p.offset }

// PageNo returns the 1-based page that starts at Offset.
func (p *Pagination) PageNo() int { return p.offset/p.limit + 1 }

func (p *Pagination) AppendTemplate(b []byte) ([]byte, error) { return p.AppendSolid(b), nil }

func (p *Pagination) AppendSolid(b []byte) []byte {
	b = append(b, "LIMIT "...)
	b = strconv.AppendInt(b, int64(p.limit), 10)
	b = append(b, " OFFSET "...)
	return strconv.AppendInt(b, int64(p.offset), 10)
}

func (p *Pagination) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value { return vals }
