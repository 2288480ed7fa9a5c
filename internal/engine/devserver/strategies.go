package devserver

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/nativedev/internal/adapters/process"
	"go.trai.ch/nativedev/internal/adapters/webserve"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
)

// milestones is the progress total reported by every platform build.
const milestones = 3

// build dispatches to the recipe of p. A returned handle owns whatever was
// spawned, even when err is set.
func (s *Server) build(ctx context.Context, p domain.Platform) (*process.Handle, error) {
	switch p {
	case domain.Desktop:
		return s.buildDesktop(ctx)
	case domain.IOS:
		return s.buildIOS(ctx)
	case domain.Android:
		return s.buildAndroid(ctx)
	case domain.Web:
		return s.buildWeb(ctx)
	default:
		return nil, domain.NewConfigInvalid(p, "unsupported platform")
	}
}

// buildDesktop spawns the desktop command as the app process. With a
// configured binary the command is run to completion first and the binary is
// spawned instead.
func (s *Server) buildDesktop(ctx context.Context) (*process.Handle, error) {
	argv := s.cfg.DesktopCommand()
	if len(argv) == 0 {
		return nil, domain.NewConfigInvalid(domain.Desktop, "build_command is empty")
	}

	s.status.UpdateProgress(0, milestones, "starting")

	if s.cfg.Desktop.Binary == "" {
		s.status.UpdateProgress(1, milestones, "building")
		h, err := s.spawn(ctx, domain.Desktop, argv)
		if err != nil {
			return nil, err
		}
		s.status.UpdateProgress(milestones, milestones, "ready")
		return h, nil
	}

	s.status.UpdateProgress(1, milestones, "building")
	if err := s.runTool(ctx, domain.Desktop, argv); err != nil {
		return nil, err
	}

	s.status.UpdateProgress(2, milestones, "launching")
	h, err := s.spawn(ctx, domain.Desktop, []string{s.resolve(s.cfg.Desktop.Binary)})
	if err != nil {
		return nil, err
	}
	s.status.UpdateProgress(milestones, milestones, "ready")
	return h, nil
}

// buildIOS runs the iOS build script for the app target and opens the simulator.
func (s *Server) buildIOS(ctx context.Context) (*process.Handle, error) {
	launcher := strings.Fields(s.cfg.IOS.SimulatorCommand)
	if len(launcher) == 0 {
		return nil, domain.NewConfigInvalid(domain.IOS, "ios.simulator_command is empty")
	}

	s.status.UpdateProgress(0, milestones, "starting")
	script, err := s.script(domain.IOS, s.cfg.Scripts.IOS)
	if err != nil {
		return nil, err
	}

	s.status.UpdateProgress(1, milestones, "building")
	if err := s.runTool(ctx, domain.IOS, []string{"sh", script, s.cfg.IOS.Target}); err != nil {
		return nil, err
	}

	s.status.UpdateProgress(2, milestones, "launching simulator")
	h, err := s.spawn(ctx, domain.IOS, launcher)
	if err != nil {
		return nil, err
	}
	s.status.UpdateProgress(milestones, milestones, "ready")
	return h, nil
}

// buildAndroid runs the Android build script and boots the configured AVD.
// No emulator is started when the script fails.
func (s *Server) buildAndroid(ctx context.Context) (*process.Handle, error) {
	s.status.UpdateProgress(0, milestones, "starting")
	script, err := s.script(domain.Android, s.cfg.Scripts.Android)
	if err != nil {
		return nil, err
	}

	s.status.UpdateProgress(1, milestones, "building")
	if err := s.runTool(ctx, domain.Android, []string{"sh", script}); err != nil {
		return nil, err
	}

	s.status.UpdateProgress(2, milestones, "launching emulator")
	h, err := s.spawn(ctx, domain.Android, []string{s.cfg.Android.Emulator, "-avd", s.cfg.Android.AVDName})
	if err != nil {
		return nil, err
	}
	s.status.UpdateProgress(milestones, milestones, "ready")
	return h, nil
}

// buildWeb runs the web build script, serves the output directory and opens
// the browser. A browser that cannot be opened only produces a warning.
func (s *Server) buildWeb(ctx context.Context) (*process.Handle, error) {
	s.status.UpdateProgress(0, milestones, "starting")
	script, err := s.script(domain.Web, s.cfg.Scripts.Web)
	if err != nil {
		return nil, err
	}

	s.status.UpdateProgress(1, milestones, "building")
	if err := s.runTool(ctx, domain.Web, []string{"sh", script}); err != nil {
		return nil, err
	}

	s.status.UpdateProgress(2, milestones, "serving")
	port := s.cfg.Web.Port
	h, err := s.spawn(ctx, domain.Web, []string{
		s.selfExe, "serve",
		"--port", strconv.Itoa(port),
		"--dir", s.resolve(s.cfg.Web.OutputDir),
	})
	if err != nil {
		return nil, err
	}

	url := webserve.URL(port)
	if err := s.browser.Open(url, s.cfg.Web.Browsers); err != nil {
		s.logger.Warn("could not open browser at " + url + ": " + err.Error())
	}

	s.status.UpdateProgress(milestones, milestones, "ready")
	return h, nil
}

// script resolves a build script against the project root.
func (s *Server) script(p domain.Platform, name string) (string, error) {
	path := s.resolve(name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", domain.NewScriptNotFound(p, path)
	}
	return path, nil
}

func (s *Server) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.cfg.Root, path)
}

// runTool runs argv to completion. A nonzero exit is a ToolFailed error.
func (s *Server) runTool(ctx context.Context, p domain.Platform, argv []string) error {
	code, err := s.executor.Run(ctx, s.command(p, argv))
	if err != nil {
		return domain.NewSpawnFailed(p, argv, err)
	}
	if code != 0 {
		return domain.NewToolFailed(p, code)
	}
	return nil
}

func (s *Server) spawn(ctx context.Context, p domain.Platform, argv []string) (*process.Handle, error) {
	proc, err := s.executor.Spawn(ctx, s.command(p, argv))
	if err != nil {
		return nil, domain.NewSpawnFailed(p, argv, err)
	}
	return process.Wrap(p, proc), nil
}

func (s *Server) command(p domain.Platform, argv []string) ports.Command {
	return ports.Command{
		Argv:  argv,
		Dir:   s.cfg.Root,
		Env:   s.cfg.ScriptEnv(p),
		Label: p.String(),
	}
}
