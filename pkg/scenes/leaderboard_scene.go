package scenes

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/decker502/earthday/pkg/config"
	"github.com/decker502/earthday/pkg/leaderboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// LeaderboardScene 一局结束后的排行榜
//
// 创建时把本局结果提交给排行榜存储，然后显示本局成绩和前 N 名；
// 按回车或 Esc 返回主菜单。存储失败不影响显示本局成绩。
type LeaderboardScene struct {
	services *Services
	user     leaderboard.User
	score    leaderboard.Score

	entryID int64 // 本局记录的ID，提交失败时为 0
	top     []leaderboard.Entry

	headingFace *text.GoTextFace
	rowFace     *text.GoTextFace
	logger      *log.Logger
}

// NewLeaderboardScene 提交本局结果并加载排行
func NewLeaderboardScene(s *Services, user leaderboard.User, score leaderboard.Score) (*LeaderboardScene, error) {
	headingFace, err := s.Resources.LoadFont(s.Config.Assets.Font, config.MenuFontLarge)
	if err != nil {
		return nil, err
	}
	rowFace, err := s.Resources.LoadFont(s.Config.Assets.Font, config.MenuFontSmall)
	if err != nil {
		return nil, err
	}

	scene := &LeaderboardScene{
		services:    s,
		user:        user,
		score:       score,
		headingFace: headingFace,
		rowFace:     rowFace,
		logger:      log.WithPrefix("LeaderboardScene"),
	}
	scene.submit()
	return scene, nil
}

func (l *LeaderboardScene) submit() {
	board := l.services.Board
	if board == nil {
		return
	}

	id, err := board.Submit(l.user, l.score)
	if err != nil {
		l.logger.Warn("failed to save score", "err", err)
	} else {
		l.entryID = id
	}

	top, err := board.Top(l.services.Config.Leaderboard.Limit)
	if err != nil {
		l.logger.Warn("failed to load leaderboard", "err", err)
		return
	}
	l.top = top
}

// Entries 返回显示的排行记录
func (l *LeaderboardScene) Entries() []leaderboard.Entry {
	return l.top
}

// Update 按回车或 Esc 返回主菜单
func (l *LeaderboardScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		l.Dismiss()
	}
}

// Dismiss 返回主菜单
func (l *LeaderboardScene) Dismiss() {
	l.services.SceneManager.EnterMenu()
}

// Draw 绘制本局成绩和排行
func (l *LeaderboardScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.ClearColor)

	b := screen.Bounds()
	x := float64(b.Dx()) / 6
	y := 40.0

	l.drawText(screen, l.headingFace, "Leaderboard", x, y, config.MenuTextColor)
	y += config.MenuFontLarge + 10

	l.drawText(screen, l.rowFace, ResultLine(l.user, l.score), x, y, config.NameColor(l.user.Gender))
	y += config.MenuLineHeight

	for i, e := range l.top {
		var c color.Color = config.MenuTextColor
		if e.ID == l.entryID {
			c = config.NameColor(e.User.Gender)
		}
		l.drawText(screen, l.rowFace, RankLine(i+1, e), x, y, c)
		y += config.MenuFontSmall + 4
	}

	l.drawText(screen, l.rowFace, "Press Enter to return to the menu", x, float64(b.Dy())-config.MenuLineHeight,
		config.MenuTextColor)
}

func (l *LeaderboardScene) drawText(screen *ebiten.Image, face *text.GoTextFace, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// ResultLine 本局成绩的一行文本
func ResultLine(user leaderboard.User, score leaderboard.Score) string {
	return fmt.Sprintf("%s: %d recycled, %d missed (%s)", user.Name, score.Right, score.Wrong, score.PercentLabel())
}

// RankLine 排行榜中的一行文本
func RankLine(rank int, e leaderboard.Entry) string {
	return fmt.Sprintf("%2d. %-15s %4d %4d  %s", rank, e.User.Name, e.Score.Right, e.Score.Wrong, e.Score.PercentLabel())
}
