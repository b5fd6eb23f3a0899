package handlers

import (
	"strconv"

	"github.com/pkg/errors"
)

const (
	defaultPage  = int64(1)
	defaultLimit = int64(20)
	maxLimit     = int64(200)
)

var errInvalidPagination = errors.New("invalid pagination params")

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := defaultPage
	limit := defaultLimit

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, errInvalidPagination
		}
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit, nil
}
