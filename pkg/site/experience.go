package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Experience is the data behind the experience page.
type Experience struct {
	Positions []Position  `yaml:"positions"`
	Education []Education `yaml:"education"`
}

type Position struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Period       string   `yaml:"period"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Achievements []string `yaml:"achievements"`
}

type Education struct {
	Degree  string `yaml:"degree"`
	School  string `yaml:"school"`
	Period  string `yaml:"period"`
	Details string `yaml:"details"`
}

// LoadExperience reads the experience data file. A missing file yields an
// empty Experience.
func LoadExperience(path string) (experience Experience, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = nil
			return
		}
		goto ERROR
	}
	if err = yaml.Unmarshal(data, &experience); err != nil {
		goto ERROR
	}
	return

ERROR:
	err = fmt.Errorf("loading experience from `%s`: %w", path, err)
	return
}

func (e Experience) Empty() bool {
	return len(e.Positions) == 0 && len(e.Education) == 0
}
