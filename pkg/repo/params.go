package repo

type ListParams struct {
	Limit  int
	Offset int
}

func (p ListParams) Normalized(defaultLimit, maxLimit int) ListParams {
	out := p
	if out.Limit <= 0 {
		out.Limit = defaultLimit
	}
	if out.Limit > maxLimit {
		out.Limit = maxLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return out
}
