package models

import (
	"math"
	"strings"
)

type SortBy string

const (
	SortNewest       SortBy = "newest"
	SortOldest       SortBy = "oldest"
	SortHighestPrice SortBy = "highestPrice"
	SortLowestPrice  SortBy = "lowestPrice"
	SortHighestRated SortBy = "highestRated"
	SortLowestRated  SortBy = "lowestRated"
)

// ParseSortBy accepts the sort keys case-insensitively along with the legacy
// names (TheLatest, TheOldest). Unknown or empty input yields highestRated.
func ParseSortBy(s string) SortBy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "newest", "thelatest", "latest":
		return SortNewest
	case "oldest", "theoldest":
		return SortOldest
	case "highestprice":
		return SortHighestPrice
	case "lowestprice":
		return SortLowestPrice
	case "lowestrated":
		return SortLowestRated
	default:
		return SortHighestRated
	}
}

// LectureBucket is an inclusive range over a course's total lectures.
type LectureBucket struct {
	Min int
	Max int
}

var lectureBuckets = map[string]LectureBucket{
	"1-15":  {Min: 1, Max: 15},
	"16-30": {Min: 16, Max: 30},
	"31-45": {Min: 31, Max: 45},
	"46+":   {Min: 46, Max: math.MaxInt32},
}

// ParseLectureBucket maps "1-15", "16-30", "31-45" and "46+" (also "moreThan45") to a bucket.
func ParseLectureBucket(s string) (*LectureBucket, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if strings.EqualFold(s, "moreThan45") || s == ">45" {
		s = "46+"
	}
	b, ok := lectureBuckets[s]
	if !ok {
		return nil, false
	}
	return &b, true
}

func (b LectureBucket) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// UnboundedPrice is the maximum used when no upper price bound applies.
const UnboundedPrice = math.MaxFloat64

const (
	DefaultFilterPageSize = 9
	DefaultSearchTop      = 7
	DefaultCourseSearch   = 9
	DefaultInstructorPage = 8
	DefaultResourcePage   = 10
)

type CourseFilter struct {
	SortBy        SortBy
	Categories    []Category
	Rate          float64
	MinimumPrice  float64
	MaximumPrice  float64
	LectureBucket *LectureBucket
	PageNumber    int
	PageSize      int
}
