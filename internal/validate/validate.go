package validate

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/tsunami-vis/topo-utils/internal/utils"
)

// RunDirectory validates that given directory is a valid run input
// directory holding a Terrain-RGB DEM and its georeferencing sidecar
func RunDirectory(runDirPath string) error {
	if !utils.IsDirectory(runDirPath) {
		return fmt.Errorf("%s does not exist or is no directory", runDirPath)
	}

	// check DEM
	if !utils.IsFile(path.Join(runDirPath, "dem.png")) {
		return fmt.Errorf("%s is missing", path.Join(runDirPath, "dem.png"))
	}

	// check meta.json
	if !utils.IsFile(path.Join(runDirPath, "meta.json")) {
		return fmt.Errorf("%s is missing", path.Join(runDirPath, "meta.json"))
	}

	return nil
}

// DeformationDirectory validates that given directory holds deformation
// frames plus the georeferencing sidecar
func DeformationDirectory(dirPath string) error {
	if !utils.IsDirectory(dirPath) {
		return fmt.Errorf("%s does not exist or is no directory", dirPath)
	}

	if !utils.IsFile(path.Join(dirPath, "meta.json")) {
		return fmt.Errorf("%s is missing", path.Join(dirPath, "meta.json"))
	}

	frames, err := filepath.Glob(path.Join(dirPath, "dz_*.png"))
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("%s holds no dz_*.png frames", dirPath)
	}

	return nil
}
