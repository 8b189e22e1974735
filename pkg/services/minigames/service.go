package minigames

import "fmt"

// Service serves the randomized one-shot commands
type Service struct {
	fortunes *Picker
	kits     *Picker
}

// NewService creates the service. kitsPath optionally overrides the built-in kit list.
func NewService(kitsPath string) (*Service, error) {
	kits, err := LoadPicker(kitsPath, DefaultKits)
	if err != nil {
		return nil, fmt.Errorf("failed to load kits from %s: %w", kitsPath, err)
	}

	return &Service{
		fortunes: NewPicker(Fortunes),
		kits:     kits,
	}, nil
}

// Fortune draws a naemikuji result
func (s *Service) Fortune() string {
	return s.fortunes.Pick()
}

// Kit draws a recommended kit
func (s *Service) Kit() string {
	return s.kits.Pick()
}
