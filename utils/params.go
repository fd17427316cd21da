package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryFloat parses an optional numeric query parameter. Absent or empty
// values yield nil.
func QueryFloat(q url.Values, key string) (*float64, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &ParamError{Param: key, Value: s}
	}
	return &f, nil
}

// QueryList collects a repeated parameter; each occurrence may itself be
// comma separated. Values are trimmed and deduplicated but keep their case.
func QueryList(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		out = append(out, SplitList(raw)...)
	}
	return dedupe(out)
}

// QueryTags is QueryList for lowercase-normalized tag sets.
func QueryTags(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		out = append(out, SplitTags(raw)...)
	}
	return dedupe(out)
}

func QueryBool(q url.Values, key string) bool {
	b, _ := strconv.ParseBool(q.Get(key))
	return b
}

type ParamError struct {
	Param string
	Value string
}

func (e *ParamError) Error() string {
	return "invalid value " + strconv.Quote(e.Value) + " for parameter " + e.Param
}

// SplitList splits a comma separated value, dropping blanks and duplicates.
func SplitList(input string) []string {
	var out []string
	for _, p := range strings.Split(input, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return dedupe(out)
}

// SplitTags is SplitList with every tag lowercased.
func SplitTags(input string) []string {
	tags := SplitList(input)
	for i, t := range tags {
		tags[i] = strings.ToLower(t)
	}
	return dedupe(tags)
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// IsHTTPURL reports whether s is an absolute http or https URL with a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
