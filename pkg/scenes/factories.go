package scenes

import (
	"github.com/decker502/earthday/pkg/game"
	"github.com/decker502/earthday/pkg/leaderboard"
)

// Factories 返回创建三个场景的工厂函数，交给 SceneManager 使用
//
// 菜单和排行榜场景只在字体无法解析时创建失败，此时记录错误并保留空场景。
func (s *Services) Factories() game.SceneFactories {
	return game.SceneFactories{
		Menu: func() game.Scene {
			scene, err := NewMenuScene(s)
			if err != nil {
				logFactoryError("menu", err)
				return nil
			}
			return scene
		},
		Game: func(player leaderboard.User) (game.Scene, error) {
			scene, err := NewGameScene(s, player)
			if err != nil {
				return nil, err
			}
			return scene, nil
		},
		Leaderboard: func(user leaderboard.User, score leaderboard.Score) game.Scene {
			scene, err := NewLeaderboardScene(s, user, score)
			if err != nil {
				logFactoryError("leaderboard", err)
				return nil
			}
			return scene
		},
	}
}
