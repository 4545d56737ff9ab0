package x11

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgbutil/xprop"
)

// DPI returns Xft.dpi from the root RESOURCE_MANAGER property. X11 has a
// single resource database per screen, so the value applies to every
// window.
func (c *Connection) DPI() (int, error) {
	resources, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, c.Root, "RESOURCE_MANAGER"))
	if err != nil {
		return 0, fmt.Errorf("read RESOURCE_MANAGER: %w", err)
	}
	dpi, ok := parseXftDPI(resources)
	if !ok {
		return 0, errors.New("no Xft.dpi in RESOURCE_MANAGER")
	}
	return dpi, nil
}

// parseXftDPI finds "Xft.dpi: <n>" in an X resource database string.
// Fractional values are rounded.
func parseXftDPI(resources string) (int, bool) {
	for _, line := range strings.Split(resources, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(key) != "Xft.dpi" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || f <= 0 {
			return 0, false
		}
		return int(math.Round(f)), true
	}
	return 0, false
}
