package mana

import "encoding/json"

// Pools and costs serialize as their brace-token strings, so a cache file
// or annotation file reads the same way a cost reads on a card.

func (p Pool) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Pool) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePool(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (c Cost) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Cost) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCost(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
