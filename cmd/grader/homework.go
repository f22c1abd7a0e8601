// Copyright 2017 CoreOS, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/coreos-grader/grader/config"
	"github.com/coreos-grader/grader/locator"
	"github.com/coreos-grader/grader/orchestrator"
	"github.com/coreos-grader/grader/points"
	"github.com/coreos-grader/grader/process"
	"github.com/coreos-grader/grader/stage"
)

// setupGroupName is the one reserved group name: tests listed under it
// run sequentially before any regular test and can abort the run, per
// spec.md §4.1. Every other group name in HwConfig.Groups simply
// scopes which discovered tests --group selects.
const setupGroupName = "setup"

// homeworkBuild is the fully resolved set of test specs a loaded
// hw.yaml and submission directory produce, ready to hand to an
// orchestrator.Orchestrator.
type homeworkBuild struct {
	Setup   []orchestrator.TestSpec
	Regular []orchestrator.TestSpec
}

// loadHomework reads hw.yaml at hwConfigPath, discovers its test_<id>
// directories, and builds the setup/regular TestSpec lists, optionally
// scoped to a single named group.
func loadHomework(hwConfigPath, submissionPath, groupName string) (homeworkBuild, error) {
	hwData, err := os.ReadFile(hwConfigPath)
	if err != nil {
		return homeworkBuild{}, fmt.Errorf("grader: reading %s: %w", hwConfigPath, err)
	}
	hw, err := config.ParseHwConfig(hwData)
	if err != nil {
		return homeworkBuild{}, err
	}

	hwDir := filepath.Dir(hwConfigPath)
	staticDir := existingDir(filepath.Join(hwDir, "static"))
	systemDir := existingDir(filepath.Join(filepath.Dir(filepath.Dir(hwDir)), "system"))

	testConfigs, testDirs, err := discoverTests(hwDir)
	if err != nil {
		return homeworkBuild{}, err
	}

	tree := locator.NewTree(systemDir, staticDir, testDirs)

	setupIDs, regularIDs := partitionTests(hw, testConfigs, groupName)

	build := homeworkBuild{}
	for _, id := range setupIDs {
		spec, err := buildTestSpec(id, testConfigs[id], tree, submissionPath)
		if err != nil {
			return homeworkBuild{}, err
		}
		build.Setup = append(build.Setup, spec)
	}
	for _, id := range regularIDs {
		spec, err := buildTestSpec(id, testConfigs[id], tree, submissionPath)
		if err != nil {
			return homeworkBuild{}, err
		}
		build.Regular = append(build.Regular, spec)
	}
	return build, nil
}

func existingDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return ""
}

// discoverTests walks hwDir for test_<decimal id> directories, skipping
// (with a warning) any whose suffix does not parse as a TestID, per
// spec.md §6's "ids that do not parse are skipped with a warning."
func discoverTests(hwDir string) (map[points.TestID]*config.TestConfig, map[points.TestID]string, error) {
	entries, err := os.ReadDir(hwDir)
	if err != nil {
		return nil, nil, fmt.Errorf("grader: reading %s: %w", hwDir, err)
	}

	configs := map[points.TestID]*config.TestConfig{}
	dirs := map[points.TestID]string{}
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "test_") {
			continue
		}
		idStr := strings.TrimPrefix(entry.Name(), "test_")
		n, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			plog.Warningf("grader: skipping %s: %v", entry.Name(), err)
			continue
		}
		id := points.TestID(n)
		dir := filepath.Join(hwDir, entry.Name())
		dirs[id] = dir

		data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
		if err != nil {
			return nil, nil, fmt.Errorf("grader: reading %s config.yaml: %w", entry.Name(), err)
		}
		tc, err := config.ParseTestConfig(data)
		if err != nil {
			return nil, nil, fmt.Errorf("grader: %s: %w", entry.Name(), err)
		}
		configs[id] = tc
	}
	return configs, dirs, nil
}

// partitionTests splits the discovered test ids into the ordered setup
// list (the "setup" group, if any) and the regular list, optionally
// narrowed to groupName.
func partitionTests(hw *config.HwConfig, configs map[points.TestID]*config.TestConfig, groupName string) ([]points.TestID, []points.TestID) {
	var setup []points.TestID
	inSetup := map[points.TestID]bool{}
	for _, g := range hw.Groups {
		if g.Name != setupGroupName {
			continue
		}
		for _, id := range g.Tests {
			if _, ok := configs[id]; ok && !inSetup[id] {
				setup = append(setup, id)
				inSetup[id] = true
			}
		}
	}

	var regularCandidates []points.TestID
	if groupName != "" && groupName != setupGroupName {
		for _, g := range hw.Groups {
			if g.Name != groupName {
				continue
			}
			for _, id := range g.Tests {
				if _, ok := configs[id]; ok && !inSetup[id] {
					regularCandidates = append(regularCandidates, id)
				}
			}
		}
	} else {
		for id := range configs {
			if !inSetup[id] {
				regularCandidates = append(regularCandidates, id)
			}
		}
		sort.Slice(regularCandidates, func(i, j int) bool {
			return regularCandidates[i].Compare(regularCandidates[j]) < 0
		})
	}
	return setup, regularCandidates
}

func buildTestSpec(id points.TestID, tc *config.TestConfig, tree *locator.Tree, submissionPath string) (orchestrator.TestSpec, error) {
	testLocator, err := tree.ForTest(id)
	if err != nil {
		return orchestrator.TestSpec{}, fmt.Errorf("grader: test %s: %w", id, err)
	}
	workspaceFactory, err := tree.WorkspaceFactory(id)
	if err != nil {
		return orchestrator.TestSpec{}, fmt.Errorf("grader: test %s: %w", id, err)
	}

	executor := process.NewExecutor()
	stages := []stage.Stage{copySubmission{Src: submissionPath}}

	if tc.Import != nil {
		stages = append(stages, stage.ImportFiles{Locator: testLocator, Files: tc.Import.Files})
	}
	if tc.Compile != nil {
		stages = append(stages, stage.Compile{Executor: executor, MakeArgs: tc.Compile.MakeArgs})
	}
	if tc.Run != nil {
		stages = append(stages, buildRunStage(executor, tc.Run))
	}
	if tc.Compares != nil {
		compareStage, err := buildCompareStage(workspaceFactory, tc.Compares)
		if err != nil {
			return orchestrator.TestSpec{}, fmt.Errorf("grader: test %s: %w", id, err)
		}
		stages = append(stages, compareStage)
	}
	if tc.Valgrind != nil {
		if tc.Run == nil {
			return orchestrator.TestSpec{}, fmt.Errorf("grader: test %s: valgrind requires a run section", id)
		}
		v := stage.Valgrind{
			Executor:     executor,
			Executable:   tc.Run.Executable,
			Args:         tc.Run.Args,
			Stdin:        tc.Run.Stdin,
			Locator:      testLocator,
			Suppressions: tc.Valgrind.Suppressions,
			Points:       tc.Valgrind.Points,
		}
		if tc.Run.TimeoutSec != nil {
			v.Timeout = 2 * time.Duration(*tc.Run.TimeoutSec) * time.Second
		}
		stages = append(stages, v)
	}

	return orchestrator.TestSpec{Description: tc.Description, Stages: stages}, nil
}

func buildRunStage(executor process.Executor, rc *config.RunConfig) stage.Run {
	r := stage.Run{
		Executor:             executor,
		Executable:           rc.Executable,
		Args:                 rc.Args,
		Stdin:                rc.Stdin,
		StdoutCapture:        rc.Stdout,
		StderrCapture:        rc.Stderr,
		DisableGarbageMemory: rc.DisableGarbageMemory,
	}
	if rc.TimeoutSec != nil {
		r.Timeout = time.Duration(*rc.TimeoutSec) * time.Second
	}
	if rc.ReturnCode != nil {
		r.ReturnCode = &stage.ReturnCodeCheck{
			Expected: rc.ReturnCode.Expected,
			Points:   rc.ReturnCode.Points,
		}
	}
	return r
}

func buildCompareStage(factory locator.Factory, cc *config.ComparesConfig) (stage.CompareFiles, error) {
	comparisons := make([]stage.Comparison, 0, len(cc.Compares))
	for _, c := range cc.Compares {
		comparisons = append(comparisons, stage.Comparison{
			StudentFile: c.StudentFile,
			Expected:    c.Expected,
			CompareType: stage.CompareType(c.CompareType),
			Points:      c.Points,
			ShowOutput:  c.ShowOutput,
		})
	}
	return stage.NewCompareFiles(factory, comparisons)
}

// copySubmission seeds a test's workspace with the student's
// submission before any configured stage runs. It is a "system stage"
// in the sense of stage/import_files.go: any failure means the grader
// itself is misconfigured, never a grading outcome.
type copySubmission struct {
	Src string
}

func (c copySubmission) Run(ctx context.Context, workspace string) (stage.Result, error) {
	entries, err := os.ReadDir(c.Src)
	if err != nil {
		return stage.Result{}, fmt.Errorf("grader: reading submission %s: %w", c.Src, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := copySubmissionFile(filepath.Join(c.Src, entry.Name()), filepath.Join(workspace, entry.Name())); err != nil {
			return stage.Result{}, fmt.Errorf("grader: copying submission file %s: %w", entry.Name(), err)
		}
	}
	return stage.Result{Status: stage.Continue(points.Partial(points.Zero))}, nil
}

func copySubmissionFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
