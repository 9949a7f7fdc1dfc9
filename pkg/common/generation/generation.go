package generation

import "github.com/google/uuid"

// GenerateKey returns a fresh random (v4) uuid in its canonical 36-char form.
func GenerateKey() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
