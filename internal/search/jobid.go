package search

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
)

var (
	jobIDPattern       = regexp.MustCompile(`jobId[=\-](\d+)`)
	jobListingsPattern = regexp.MustCompile(`/job-listings-([^/?]+)`)
)

// ExtractJobID достает идентификатор вакансии из URL. Если ни один
// из известных форматов не подошел, берется префикс md5 от URL -
// так одна и та же ссылка всегда дает один и тот же ID.
func ExtractJobID(url string) string {
	if m := jobIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := jobListingsPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}

	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}
