package app

import (
	"net/url"
	"strings"
)

// DSNOptions are connection parameters added to DB_URL. Anything DB_URL already sets wins.
type DSNOptions struct {
	ApplicationName string
	// DisablePreparedBinaryResult is understood by lib/pq only. pgx forwards unknown keys to the
	// server as runtime parameters, so the gorm connection must leave it unset.
	DisablePreparedBinaryResult bool
}

func (o DSNOptions) params() [][2]string {
	var params [][2]string
	if name := strings.TrimSpace(o.ApplicationName); name != "" {
		params = append(params, [2]string{"application_name", name})
	}
	if o.DisablePreparedBinaryResult {
		params = append(params, [2]string{"disable_prepared_binary_result", "yes"})
	}
	return params
}

// NormalizeDBURL adds opts to raw, which is either a postgres:// URL or a key=value DSN.
func NormalizeDBURL(raw string, opts DSNOptions) string {
	params := opts.params()
	if len(params) == 0 {
		return raw
	}

	if u, ok := parseDBURL(raw); ok {
		query := u.Query()
		for _, p := range params {
			if !query.Has(p[0]) {
				query.Set(p[0], p[1])
			}
		}
		u.RawQuery = query.Encode()
		return u.String()
	}

	dsn := strings.TrimSpace(raw)
	set := dsnParams(dsn)
	for _, p := range params {
		if _, ok := set[p[0]]; !ok {
			dsn += " " + p[0] + "=" + quoteDSNValue(p[1])
		}
	}
	return strings.TrimSpace(dsn)
}

func dbNameFromURL(raw string) string {
	if u, ok := parseDBURL(raw); ok {
		return strings.TrimSpace(strings.TrimPrefix(u.Path, "/"))
	}
	return dsnParams(raw)["dbname"]
}

func parseDBURL(raw string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return nil, false
	}
	return u, true
}

// dsnParams reads the keys of a key=value DSN. Quoted values lose their quotes; embedded spaces are not supported.
func dsnParams(dsn string) map[string]string {
	params := make(map[string]string)
	for _, token := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" {
			continue
		}
		params[key] = strings.Trim(value, `"'`)
	}
	return params
}

func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}
