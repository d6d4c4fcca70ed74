//go:build linux

package platform

import (
	"fmt"

	"eyerest/internal/core/model"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"
)

func queryDisplays() ([]model.Rect, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	if screens, ok := xineramaScreens(conn); ok {
		return screens, nil
	}

	// No Xinerama: the root window spans the only screen.
	screen := xproto.Setup(conn).DefaultScreen(conn)
	return []model.Rect{{
		Width:  int(screen.WidthInPixels),
		Height: int(screen.HeightInPixels),
	}}, nil
}

func xineramaScreens(conn *xgb.Conn) ([]model.Rect, bool) {
	if err := xinerama.Init(conn); err != nil {
		return nil, false
	}
	active, err := xinerama.IsActive(conn).Reply()
	if err != nil || active.State == 0 {
		return nil, false
	}
	reply, err := xinerama.QueryScreens(conn).Reply()
	if err != nil || len(reply.ScreenInfo) == 0 {
		return nil, false
	}

	screens := make([]model.Rect, 0, len(reply.ScreenInfo))
	for _, info := range reply.ScreenInfo {
		screens = append(screens, model.Rect{
			X:      int(info.XOrg),
			Y:      int(info.YOrg),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return screens, true
}
