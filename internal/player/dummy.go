package player

// Dummy is an in-process simulated backend used for development, tests and as
// the terminal fallback of the auto preference chain.
type Dummy struct {
	files   []string
	index   int
	playing bool
	volume  int
}

func NewDummy() *Dummy {
	return &Dummy{index: -1, volume: 70}
}

func (d *Dummy) LoadPlaylist(files []string) {
	d.playing = false
	d.files = append([]string(nil), files...)
	if len(d.files) > 0 {
		d.index = 0
	} else {
		d.index = -1
	}
}

func (d *Dummy) Play() {
	if len(d.files) == 0 {
		return
	}
	d.playing = true
}

func (d *Dummy) Stop() {
	d.playing = false
	d.index = -1
}

func (d *Dummy) SetVolume(volume int) {
	d.volume = clampVolume(volume)
}

func (d *Dummy) IsPlaying() bool {
	return d.playing
}

func (d *Dummy) Skip() {
	if len(d.files) == 0 {
		return
	}
	if d.index+1 < len(d.files) {
		d.index++
	} else {
		d.Stop()
	}
}

func (d *Dummy) CurrentIndex() int {
	return d.index
}

func (d *Dummy) Update() int {
	return d.index
}
