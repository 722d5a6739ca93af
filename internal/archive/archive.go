// Package archive selects and extracts the sample video member of a
// downloaded dataset tar.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoVideoMember is returned when the archive holds no video entries.
var ErrNoVideoMember = errors.New("no video members found in archive")

var videoSuffixes = []string{".mp4", ".mov", ".mkv", ".avi"}

// Member names containing one of these are preferred during selection.
var incidentKeywords = []string{"accident", "crash", "collision"}

func isVideoMember(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range videoSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// ListVideoMembers returns the names of all video entries in listing order.
func ListVideoMembers(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive '%s': %w", archivePath, err)
	}
	defer f.Close()

	var members []string
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read archive '%s': %w", archivePath, err)
		}
		if hdr.Typeflag == tar.TypeReg && isVideoMember(hdr.Name) {
			members = append(members, hdr.Name)
		}
	}
	return members, nil
}

// SelectMember picks the member to extract: the first one whose name
// contains an incident keyword, else the first in listing order.
func SelectMember(members []string) (string, error) {
	if len(members) == 0 {
		return "", ErrNoVideoMember
	}
	for _, name := range members {
		lower := strings.ToLower(name)
		for _, keyword := range incidentKeywords {
			if strings.Contains(lower, keyword) {
				return name, nil
			}
		}
	}
	return members[0], nil
}

// ExtractMember writes the named entry under destDir, preserving any
// subdirectory structure the member name implies. Member names that would
// escape destDir are rejected.
func ExtractMember(archivePath, member, destDir string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(member))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("unsafe member path '%s'", member)
	}
	target := filepath.Join(destDir, rel)

	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive '%s': %w", archivePath, err)
	}
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return "", fmt.Errorf("member '%s' not found in archive '%s'", member, archivePath)
		}
		if err != nil {
			return "", fmt.Errorf("failed to read archive '%s': %w", archivePath, err)
		}
		if hdr.Name != member {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return "", fmt.Errorf("failed to create directory for '%s': %w", target, err)
		}
		out, err := os.Create(target)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return "", fmt.Errorf("failed to extract '%s': %w", member, err)
		}
		if err := out.Close(); err != nil {
			return "", err
		}
		return target, nil
	}
}

// ExtractSampleVideo selects one video member, extracts it under destDir and
// copies its bytes to destDir/canonicalName, producing a stable path
// independent of the member's original name. The canonical copy is
// overwritten on every run.
func ExtractSampleVideo(archivePath, destDir, canonicalName string) (string, error) {
	members, err := ListVideoMembers(archivePath)
	if err != nil {
		return "", err
	}
	member, err := SelectMember(members)
	if err != nil {
		return "", err
	}

	extracted, err := ExtractMember(archivePath, member, destDir)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(extracted)
	if err != nil {
		return "", fmt.Errorf("failed to read extracted member '%s': %w", extracted, err)
	}

	samplePath := filepath.Join(destDir, canonicalName)
	if err := os.WriteFile(samplePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", samplePath, err)
	}
	return samplePath, nil
}
