package player

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"time"
)

// CVLC drives a vlc/cvlc subprocess through its remote-control interface.
// Commands go to the process over stdin via a dedicated writer goroutine, so
// the daemon tick never blocks on a pipe write. All methods are called from
// the single daemon goroutine; the writer only consumes the command channel.
type CVLC struct {
	binary  string
	files   []string
	index   int
	playing bool
	volume  int

	cmd      *exec.Cmd
	commands chan string
	exited   chan struct{}
}

func NewCVLC() (*CVLC, error) {
	binary, err := resolveVLCBinary()
	if err != nil {
		return nil, err
	}
	return &CVLC{binary: binary, index: -1, volume: 70}, nil
}

func resolveVLCBinary() (string, error) {
	candidates := []string{
		os.Getenv("CVLC_PATH"),
		os.Getenv("VLC_BINARY"),
		"cvlc",
		"vlc",
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no VLC executable found (set CVLC_PATH or install VLC)")
}

func (p *CVLC) LoadPlaylist(files []string) {
	p.Stop()
	p.files = append([]string(nil), files...)
	if len(p.files) > 0 {
		p.index = 0
	} else {
		p.index = -1
	}
}

func (p *CVLC) Play() {
	if len(p.files) == 0 {
		return
	}
	if p.cmd == nil {
		if err := p.spawn(); err != nil {
			log.Printf("❌ VLC spawn failed: %v", err)
			return
		}
	}
	// VLC with the RC interface enabled does not always start playback on
	// launch; send the command explicitly.
	p.send("play")
	p.playing = true
}

func (p *CVLC) Stop() {
	p.playing = false
	p.stopProcess()
	p.index = -1
}

func (p *CVLC) SetVolume(volume int) {
	p.volume = clampVolume(volume)
	if p.cmd != nil {
		p.send(fmt.Sprintf("volume %d", p.volume*256/100))
	}
}

func (p *CVLC) IsPlaying() bool {
	if p.cmd == nil {
		return false
	}
	select {
	case <-p.exited:
		return false
	default:
	}
	return p.playing
}

func (p *CVLC) Skip() {
	if p.index+1 < len(p.files) {
		p.send("next")
		p.index++
		return
	}
	p.Stop()
}

func (p *CVLC) CurrentIndex() int {
	return p.index
}

// Update reaps a subprocess that died behind our back. This is the only place
// the daemon learns about it; there are no callbacks.
func (p *CVLC) Update() int {
	if p.cmd != nil {
		select {
		case <-p.exited:
			close(p.commands)
			p.cmd, p.commands, p.exited = nil, nil, nil
			p.playing = false
			p.index = -1
		default:
		}
	}
	return p.index
}

func (p *CVLC) spawn() error {
	args := []string{
		"--quiet",
		"--intf", "dummy",
		"--extraintf", "rc",
		"--no-video",
		"--rc-quiet",
	}
	args = append(args, p.files...)

	cmd := exec.Command(p.binary, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	p.cmd = cmd
	p.commands = make(chan string, 32)
	p.exited = make(chan struct{})

	go writeCommands(stdin, p.commands)
	go func(done chan struct{}) {
		cmd.Wait()
		close(done)
	}(p.exited)

	// First command through the RC interface sets the volume so playback
	// never opens at the engine default level.
	p.send(fmt.Sprintf("volume %d", p.volume*256/100))
	return nil
}

func writeCommands(stdin io.WriteCloser, commands <-chan string) {
	defer stdin.Close()
	for command := range commands {
		if _, err := io.WriteString(stdin, command+"\n"); err != nil {
			return
		}
	}
}

// send never blocks the tick; a full channel means the process is wedged and
// the dropped command is the least of our problems.
func (p *CVLC) send(command string) {
	if p.commands == nil {
		return
	}
	select {
	case p.commands <- command:
	default:
		log.Printf("⚠️ VLC command queue full, dropped %q", command)
	}
}

func (p *CVLC) stopProcess() {
	if p.cmd == nil {
		return
	}
	p.send("quit")
	close(p.commands)
	select {
	case <-p.exited:
	case <-time.After(time.Second):
		p.cmd.Process.Kill()
		<-p.exited
	}
	p.cmd, p.commands, p.exited = nil, nil, nil
}
