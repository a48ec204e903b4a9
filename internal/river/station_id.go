package river

import "fmt"

// ClassifyStationID maps a numeric station id to its provider: exactly eight
// digits is a USGS site number, any other all-digit id belongs to Water Reporter.
func ClassifyStationID(id string) (Provider, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty station id", ErrInvalidInput)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: station id %q is not numeric", ErrInvalidInput, id)
		}
	}
	if len(id) == usgsIDLength {
		return ProviderUSGS, nil
	}
	return ProviderWR, nil
}

// RequestFromIDs classifies ids into a Request, allowing at most one id per provider.
func RequestFromIDs(ids ...string) (Request, error) {
	var req Request
	for _, id := range ids {
		p, err := ClassifyStationID(id)
		if err != nil {
			return Request{}, err
		}
		switch p {
		case ProviderUSGS:
			if req.USGSID != "" && req.USGSID != id {
				return Request{}, fmt.Errorf("%w: more than one USGS station id (%s, %s)", ErrInvalidInput, req.USGSID, id)
			}
			req.USGSID = id
		case ProviderWR:
			if req.WRID != "" && req.WRID != id {
				return Request{}, fmt.Errorf("%w: more than one WR station id (%s, %s)", ErrInvalidInput, req.WRID, id)
			}
			req.WRID = id
		}
	}
	if req.USGSID == "" && req.WRID == "" {
		return Request{}, ErrNoIdentifiers
	}
	return req, nil
}
