package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// LeaderboardUI shows the high score table and, when a score is pending,
// the name entry used to submit it.
type LeaderboardUI struct {
	UI *ebitenui.UI

	OnSubmit  func(name string)
	OnRefresh func()
	OnGoBack  func()

	rows        []*widget.Label
	nameInput   *widget.TextInput
	submitBtn   *widget.Button
	refreshBtn  *widget.Button
	statusLabel *widget.Label
	scoreLabel  *widget.Label
	submitted   bool

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewLeaderboardUI builds the screen. pendingScore is the score offered for
// submission; 0 hides the name entry. playerName prefills it.
func NewLeaderboardUI(pendingScore int, playerName string, onSubmit func(name string), onRefresh, onGoBack func()) (*LeaderboardUI, error) {
	lui := &LeaderboardUI{
		OnSubmit:  onSubmit,
		OnRefresh: onRefresh,
		OnGoBack:  onGoBack,
	}
	if err := lui.loadFonts(); err != nil {
		return nil, err
	}
	lui.buildUI(pendingScore, playerName)
	return lui, nil
}

func (lui *LeaderboardUI) loadFonts() error {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load UI font: %w", err)
	}

	lui.titleFace = &text.GoTextFace{Source: fontSource, Size: 18}
	lui.normalFace = &text.GoTextFace{Source: fontSource, Size: 12}
	lui.smallFace = &text.GoTextFace{Source: fontSource, Size: 10}
	return nil
}

func (lui *LeaderboardUI) buildUI(pendingScore int, playerName string) {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{5, 5, 20, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	content := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(12)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	content.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("HIGH SCORES", &lui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 140, 0, 255},
		}),
	))

	content.AddChild(lui.buildTable())

	if pendingScore > 0 {
		content.AddChild(lui.buildSubmitPanel(pendingScore, playerName))
	}

	lui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &lui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 200, 100, 255},
		}),
	)
	content.AddChild(lui.statusLabel)

	content.AddChild(lui.buildButtons())

	rootContainer.AddChild(content)
	lui.UI = &ebitenui.UI{Container: rootContainer}
}

// buildTable creates one fixed label per possible row.
func (lui *LeaderboardUI) buildTable() *widget.Container {
	padding := widget.Insets{Top: 6, Bottom: 6, Left: 10, Right: 10}
	table := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{20, 20, 40, 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(2),
		)),
	)

	lui.rows = make([]*widget.Label, tuning.MaxHighScores)
	for i := range lui.rows {
		lui.rows[i] = widget.NewLabel(
			widget.LabelOpts.Text("", &lui.normalFace, &widget.LabelColor{
				Idle: color.RGBA{255, 255, 255, 255},
			}),
		)
		table.AddChild(lui.rows[i])
	}
	return table
}

func (lui *LeaderboardUI) buildSubmitPanel(score int, playerName string) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	lui.scoreLabel = widget.NewLabel(
		widget.LabelOpts.Text("SCORE "+leaderboard.FormatScore(score), &lui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{0, 255, 60, 255},
		}),
	)
	row.AddChild(lui.scoreLabel)

	lui.nameInput = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 22)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{50, 50, 70, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&lui.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(tuning.DefaultUserName),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
	lui.nameInput.SetText(playerName)
	row.AddChild(lui.nameInput)

	lui.submitBtn = widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(90, 24)),
		widget.ButtonOpts.Image(greenButtonImage()),
		widget.ButtonOpts.Text("Submit", &lui.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{200, 255, 200, 255},
			Pressed:  color.RGBA{150, 200, 150, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if lui.OnSubmit != nil {
				lui.OnSubmit(lui.Name())
			}
		}),
	)
	row.AddChild(lui.submitBtn)

	return row
}

func (lui *LeaderboardUI) buildButtons() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
	)

	lui.refreshBtn = lui.greyButton("Refresh", func() {
		if lui.OnRefresh != nil {
			lui.OnRefresh()
		}
	})
	container.AddChild(lui.refreshBtn)

	container.AddChild(lui.greyButton("Back", func() {
		if lui.OnGoBack != nil {
			lui.OnGoBack()
		}
	}))

	return container
}

func (lui *LeaderboardUI) greyButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 28)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
			Hover:    image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
			Pressed:  image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 40, 255}),
		}),
		widget.ButtonOpts.Text(label, &lui.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{255, 200, 200, 255},
			Pressed:  color.RGBA{200, 150, 150, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func greenButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.RGBA{40, 100, 40, 255}),
		Hover:    image.NewNineSliceColor(color.RGBA{60, 140, 60, 255}),
		Pressed:  image.NewNineSliceColor(color.RGBA{30, 80, 30, 255}),
		Disabled: image.NewNineSliceColor(color.RGBA{40, 50, 40, 255}),
	}
}

// SetEntries fills the table. highlightID marks the player's own row.
func (lui *LeaderboardUI) SetEntries(entries []leaderboard.Entry, highlightID int64) {
	for i, row := range lui.rows {
		if i >= len(entries) {
			row.Label = ""
			continue
		}
		e := entries[i]
		marker := "  "
		if highlightID != 0 && e.ID == highlightID {
			marker = "> "
		}
		row.Label = fmt.Sprintf("%s%2d. %-10s %10s  %s", marker, i+1, e.Name, leaderboard.FormatScore(e.Score), e.Date)
	}
}

// Name returns the entered pilot name, or the default.
func (lui *LeaderboardUI) Name() string {
	if lui.nameInput == nil || lui.nameInput.GetText() == "" {
		return tuning.DefaultUserName
	}
	return lui.nameInput.GetText()
}

func (lui *LeaderboardUI) SetStatus(msg string) {
	if lui.statusLabel != nil {
		lui.statusLabel.Label = msg
	}
}

// SetBusy disables the buttons while a request is in flight.
func (lui *LeaderboardUI) SetBusy(busy bool) {
	if lui.refreshBtn != nil {
		lui.refreshBtn.GetWidget().Disabled = busy
	}
	if lui.submitBtn != nil {
		lui.submitBtn.GetWidget().Disabled = busy || lui.submitted
	}
}

// LockSubmit disables the submit controls once a score has been sent.
func (lui *LeaderboardUI) LockSubmit() {
	lui.submitted = true
	if lui.submitBtn != nil {
		lui.submitBtn.GetWidget().Disabled = true
	}
	if lui.nameInput != nil {
		lui.nameInput.GetWidget().Disabled = true
	}
	if lui.scoreLabel != nil {
		lui.scoreLabel.Label += "  (sent)"
	}
}

func (lui *LeaderboardUI) Update() {
	lui.UI.Update()
}
