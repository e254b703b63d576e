package questions

import "context"

// HasOverride reports whether a published override can currently be fetched.
func (r *Resolver) HasOverride(ctx context.Context, year int, questionID string) bool {
	_, ok := r.overrideTier(ctx, lookupRequest{year: year, questionID: questionID})
	return ok
}

// GetMetadata returns the _admin block of the published override, or nil
// when there is no override or it carries no metadata.
func (r *Resolver) GetMetadata(ctx context.Context, year int, questionID string) map[string]interface{} {
	q, ok := r.overrideTier(ctx, lookupRequest{year: year, questionID: questionID})
	if !ok {
		return nil
	}
	meta, _ := q[AdminKey].(map[string]interface{})
	return meta
}
