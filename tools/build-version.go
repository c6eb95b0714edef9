package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/blang/semver"
)

// describe asks git for the nearest tag matching 'match' and, when the
// working tree is ahead of it, the number of commits since.
func describe(match ...string) (string, *semver.PRVersion) {
	args := append([]string{
		"describe", "--tags",
	}, match...)
	tag, err := exec.Command("git", args...).Output()
	if err != nil {
		return "", nil
	}
	tagParts := strings.Split(string(tag), "-")
	if len(tagParts) == 3 {
		if ahead, err := semver.NewPRVersion(tagParts[1]); err == nil {
			return tagParts[0], &ahead
		}
	} else if len(tagParts) == 4 {
		if ahead, err := semver.NewPRVersion(tagParts[2]); err == nil {
			return tagParts[0] + "-" + tagParts[1], &ahead
		}
	}

	return string(tag), nil
}

// Prints the version string to stamp into the binary: the tag itself for a
// release build, and the next patch version with a pre-release suffix for
// anything in between.
func main() {
	if tags, err := exec.Command("git", "tag").Output(); err != nil || len(tags) == 0 {
		// no tags found -- fetch them
		exec.Command("git", "fetch", "--tags").Run()
	}

	versionStr, ahead := describe("--match", "v*")
	version, err := semver.ParseTolerant(versionStr)
	if err != nil {
		// no version tag found at all
		fmt.Println("0.0.0-unknown")
		return
	}

	tag, _ := describe("--exact-match")
	if tag == versionStr {
		// building exactly at a release tag
		fmt.Println(version.String())
		return
	}

	if tag == "" {
		tag = "dev"
	}

	if !strings.Contains(version.String(), "rc") {
		version.Patch = version.Patch + 1
	}

	if pr, err := semver.NewPRVersion(tag); err == nil {
		version.Pre = append(version.Pre, pr)
	}

	if ahead != nil {
		version.Pre = append(version.Pre, *ahead)
	}

	fmt.Println(version.String())
}
