package validator

import "encoding/json"

// Header is the decoded JWT header segment.
type Header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ,omitempty"`
	KeyID     string `json:"kid,omitempty"`
}

// Claims is the decoded JWT payload segment. Registered claims (as
// specified in RFC 7519) are surfaced as typed fields; a zero value
// means the claim was absent. Everything else lands in Custom.
type Claims struct {
	Issuer    string
	Subject   string
	Audience  []string
	Expiry    int64
	NotBefore int64
	IssuedAt  int64
	ID        string
	Custom    map[string]interface{}
}

// parseClaims decodes a JSON payload into Claims. The aud claim may be
// a single string or an array of strings; numeric date claims are
// truncated to whole seconds.
func parseClaims(payload []byte) (*Claims, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	claims := &Claims{Custom: map[string]interface{}{}}
	for name, value := range raw {
		switch name {
		case "iss":
			claims.Issuer, _ = value.(string)
		case "sub":
			claims.Subject, _ = value.(string)
		case "aud":
			claims.Audience = parseAudience(value)
		case "exp":
			claims.Expiry = numericDate(value)
		case "nbf":
			claims.NotBefore = numericDate(value)
		case "iat":
			claims.IssuedAt = numericDate(value)
		case "jti":
			claims.ID, _ = value.(string)
		default:
			claims.Custom[name] = value
		}
	}

	return claims, nil
}

func parseAudience(value interface{}) []string {
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []interface{}:
		audience := make([]string, 0, len(typed))
		for _, element := range typed {
			if s, ok := element.(string); ok {
				audience = append(audience, s)
			}
		}
		return audience
	default:
		return nil
	}
}

func numericDate(value interface{}) int64 {
	seconds, _ := value.(float64)
	return int64(seconds)
}
