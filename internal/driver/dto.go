package driver

import "errors"

type CreateDriverDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
}

func (dto CreateDriverDTO) Validate() error {
	if dto.ID == "" {
		return errors.New("id is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Class == "" {
		return errors.New("class is required")
	}
	return nil
}

// UpdateDriverDTO changes name and class only; the id in the URL is the
// identity and never moves.
type UpdateDriverDTO struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

func (dto UpdateDriverDTO) Validate() error {
	if dto.Name == "" && dto.Class == "" {
		return errors.New("nothing to update")
	}
	return nil
}
