package mapping

import "github.com/google/uuid"

// file.go describes the on-disk TOML schema for a mapping file and
// converts it into the pure Mapping value type.

type headerFile struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

type requestFile struct {
	Method        *string      `toml:"method"`
	MethodPattern *string      `toml:"method_pattern"`
	URL           *string      `toml:"url"`
	URLPattern    *string      `toml:"url_pattern"`
	Headers       []headerFile `toml:"headers"`
	HeaderPattern []headerFile `toml:"headers_pattern"`
	AllHeaders    []headerFile `toml:"all_headers"`
}

type responseFile struct {
	Status                        *uint16      `toml:"status"`
	Headers                       []headerFile `toml:"headers"`
	BodyFileName                  *string      `toml:"body_file_name"`
	ProxyBaseURL                  *string      `toml:"proxy_base_url"`
	AdditionalProxyRequestHeaders []headerFile `toml:"additional_proxy_request_headers"`
}

// File is the top-level shape of a mapping TOML document.
type File struct {
	Priority uint8        `toml:"priority"`
	Request  requestFile  `toml:"request"`
	Response responseFile `toml:"response"`
}

func toHeaders(hs []headerFile) []Header {
	if len(hs) == 0 {
		return nil
	}
	out := make([]Header, len(hs))
	for i, h := range hs {
		out[i] = Header{Key: h.Key, Value: h.Value}
	}
	return out
}

// ToMapping converts a parsed File into a domain Mapping, assigning it the
// given identifier (the store generates one fresh UUID per loaded file).
func (f File) ToMapping(id uuid.UUID) Mapping {
	return Mapping{
		ID:       id,
		Priority: f.Priority,
		Request: RequestPattern{
			Method:         f.Request.Method,
			MethodPattern:  f.Request.MethodPattern,
			URL:            f.Request.URL,
			URLPattern:     f.Request.URLPattern,
			Headers:        toHeaders(f.Request.Headers),
			HeaderPatterns: toHeaders(f.Request.HeaderPattern),
			AllHeaders:     toHeaders(f.Request.AllHeaders),
		},
		Response: ResponsePattern{
			Status:                        f.Response.Status,
			Headers:                       toHeaders(f.Response.Headers),
			BodyFileName:                  f.Response.BodyFileName,
			ProxyBaseURL:                  f.Response.ProxyBaseURL,
			AdditionalProxyRequestHeaders: toHeaders(f.Response.AdditionalProxyRequestHeaders),
		},
	}
}
