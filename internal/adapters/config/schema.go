package config

// Nativefile represents the structure of the nativedev.yaml configuration file.
type Nativefile struct {
	Version         string     `yaml:"version"`
	Name            string     `yaml:"name"`
	Root            string     `yaml:"root"`
	TargetPlatforms []string   `yaml:"target_platforms"`
	BuildCommand    string     `yaml:"build_command"`
	Desktop         DesktopDTO `yaml:"desktop"`
	IOS             IOSDTO     `yaml:"ios"`
	Android         AndroidDTO `yaml:"android"`
	Web             WebDTO     `yaml:"web"`
	Scripts         ScriptsDTO `yaml:"scripts"`
	Watch           WatchDTO   `yaml:"watch"`
	StatusAddr      string     `yaml:"status_addr"`
}

// DesktopDTO represents the desktop section.
type DesktopDTO struct {
	Binary string `yaml:"binary"`
}

// IOSDTO represents the ios section.
type IOSDTO struct {
	DeviceName       string `yaml:"device_name"`
	Version          string `yaml:"ios_version"`
	Target           string `yaml:"target"`
	SimulatorCommand string `yaml:"simulator_command"`
}

// AndroidDTO represents the android section.
type AndroidDTO struct {
	AVDName  string `yaml:"avd_name"`
	APILevel int    `yaml:"api_level"`
	ABI      string `yaml:"abi"`
	Emulator string `yaml:"emulator"`
}

// WebDTO represents the web section.
type WebDTO struct {
	Port      int      `yaml:"port"`
	Browsers  []string `yaml:"browsers"`
	OutputDir string   `yaml:"output_dir"`
}

// ScriptsDTO names the build scripts, relative to the project root.
type ScriptsDTO struct {
	IOS     string `yaml:"ios"`
	Android string `yaml:"android"`
	Web     string `yaml:"web"`
}

// WatchDTO represents the watch section. Debounce is a Go duration string.
type WatchDTO struct {
	Ignore      []string `yaml:"ignore"`
	AutoRebuild bool     `yaml:"auto_rebuild"`
	Debounce    string   `yaml:"debounce"`
}
