// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package judge

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Interests is the reader's research profile, ranked by priority.
type Interests struct {
	Strong   []string `yaml:"strong"`
	Moderate []string `yaml:"moderate"`
	General  []string `yaml:"general"`
	Avoid    []string `yaml:"avoid"`
}

// DefaultInterests returns the built-in profile used when no file is configured.
func DefaultInterests() Interests {
	return Interests{
		Strong: []string{
			"Self-evolving agents and adaptive AI systems (e.g., continual learning, agent evolution, memory/tool adaptation)",
			"Generative models for time-series data",
			"Multimodal learning and video understanding",
			"Computer vision applications (especially in temporal, agentic, or multimodal contexts)",
			"Few-shot and meta-learning",
			"Representation learning for multi-task systems (e.g., task saliency, cross-task transfer)",
			"Bayesian methods and probabilistic modeling",
			"Applications of ML in finance, especially time-dependent or causal settings",
			"Text-to-speech (TTS) and generative audio systems",
		},
		Moderate: []string{
			"Efficient Transformer architectures",
			"Causal inference and interpretability",
			"Neuro-symbolic reasoning",
			"Physics-informed neural networks (PINNs)",
			"Sim-to-real transfer and visual navigation in robotics",
			"Neural architecture search (NAS)",
			"Static LLM alignment/prompt engineering unless tied to continual learning or real-time adaptation",
			"Reinforcement learning (RL) in static settings, unless it involves continual learning or adaptive agents",
			"Offline and local models",
			"Classic standalone image classification tasks",
			"Domain-specific biomedical ML",
		},
		General: []string{
			"Broadly interested in computer science, with curiosity spanning learning theory, agent design, systems, and real-world AI deployment, especially in domains involving perception, interaction, or simulation.",
		},
	}
}

// LoadInterests reads a YAML profile. An empty path returns the default.
func LoadInterests(path string) (Interests, error) {
	if path == "" {
		return DefaultInterests(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Interests{}, fmt.Errorf("reading interests %s: %w", path, err)
	}
	var in Interests
	if err := yaml.Unmarshal(data, &in); err != nil {
		return Interests{}, fmt.Errorf("parsing interests %s: %w", path, err)
	}
	if in.empty() {
		return Interests{}, fmt.Errorf("interests %s: no entries", path)
	}
	return in, nil
}

func (in Interests) empty() bool {
	return len(in.Strong)+len(in.Moderate)+len(in.General)+len(in.Avoid) == 0
}

// String renders the profile as the ranked bullet list embedded in the
// judging prompt.
func (in Interests) String() string {
	var b strings.Builder
	section := func(heading string, items []string) {
		fmt.Fprintf(&b, "- %s:\n", heading)
		for _, item := range items {
			fmt.Fprintf(&b, "    - %s\n", item)
		}
		b.WriteString("\n")
	}
	section("Strong Interests", in.Strong)
	section("Moderate Interests", in.Moderate)
	section("General", in.General)
	section("Avoids / Not currently focused on", in.Avoid)
	return strings.TrimRight(b.String(), "\n")
}
