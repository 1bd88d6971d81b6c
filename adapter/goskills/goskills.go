package goskills

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/smallnest/goskills"
	"github.com/tmc/langchaingo/tools"
)

// SkillTool exposes a skill package as an agent tool. Calling it with empty
// input returns the skill's instructions from SKILL.md; calling it with a
// relative path (raw or JSON {"file": ...}) returns that bundled file, so
// the agent can follow references the instructions point at.
type SkillTool struct {
	name        string
	description string
	skillPath   string
}

var _ tools.Tool = (*SkillTool)(nil)

// Name returns the name of the tool.
func (t *SkillTool) Name() string {
	return t.name
}

// Description returns the description of the tool.
func (t *SkillTool) Description() string {
	return t.description
}

// Call reads the skill instructions or a file bundled with the skill.
func (t *SkillTool) Call(_ context.Context, input string) (string, error) {
	file := strings.TrimSpace(input)

	if strings.HasPrefix(file, "{") {
		var payload struct {
			File string `json:"file"`
		}
		if err := json.Unmarshal([]byte(file), &payload); err != nil {
			return "", fmt.Errorf("failed to unmarshal input: %w", err)
		}
		file = payload.File
	}

	if file == "" {
		return t.instructions()
	}

	if !filepath.IsLocal(file) {
		return "", fmt.Errorf("file path %q escapes the skill package", file)
	}

	data, err := os.ReadFile(filepath.Join(t.skillPath, file))
	if err != nil {
		return "", fmt.Errorf("failed to read skill file: %w", err)
	}

	return string(data), nil
}

func (t *SkillTool) instructions() (string, error) {
	data, err := os.ReadFile(filepath.Join(t.skillPath, "SKILL.md"))
	if err != nil {
		return "", fmt.Errorf("failed to read skill instructions: %w", err)
	}
	return stripFrontmatter(string(data)), nil
}

// SkillsToTools converts a skill package into tools an agent can consult.
func SkillsToTools(pkg goskills.SkillPackage) ([]tools.Tool, error) {
	name := strings.TrimSpace(pkg.GetName())
	if name == "" {
		return nil, fmt.Errorf("skill package has no name")
	}
	if pkg.GetPath() == "" {
		return nil, fmt.Errorf("skill package %s has no path", name)
	}

	description := strings.TrimSpace(pkg.GetDescription())
	if description == "" {
		description = fmt.Sprintf("The %s skill.", name)
	}
	if !strings.HasSuffix(description, ".") {
		description += "."
	}
	if version := strings.TrimSpace(pkg.GetVersion()); version != "" {
		description = fmt.Sprintf("%s Version %s.", description, version)
	}
	description += " Call with empty input for the skill's instructions, " +
		"or with the relative path of a bundled file to read it."

	return []tools.Tool{
		&SkillTool{
			name:        sanitizeToolName(name),
			description: description,
			skillPath:   pkg.GetPath(),
		},
	}, nil
}

// sanitizeToolName keeps letters and digits and replaces everything else
// with underscores, since models are unreliable with other characters in
// tool names.
func sanitizeToolName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

// stripFrontmatter removes a leading YAML frontmatter block, returning just
// the instruction body.
func stripFrontmatter(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return strings.TrimSpace(content)
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			return strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}

	return strings.TrimSpace(content)
}
