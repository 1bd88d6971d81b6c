// Package goskills adapts goskills skill packages into agent tools.
//
// A skill package is a directory holding a SKILL.md file that describes how
// to perform some task, optionally alongside reference files the
// instructions point at. SkillsToTools turns such a package into a tool the
// agent can consult mid-run:
//
//	import (
//		skilladapter "github.com/manojjahgirdar/types-of-retrieval-augmented-generation/adapter/goskills"
//	)
//
//	var agentTools []tools.Tool
//	for _, pkg := range packages {
//		skillTools, err := skilladapter.SkillsToTools(pkg)
//		if err != nil {
//			return err
//		}
//		agentTools = append(agentTools, skillTools...)
//	}
//
// Calling the resulting tool with empty input returns the skill's
// instructions with the frontmatter stripped; calling it with a relative
// path returns a file bundled with the skill.
package goskills
