package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/d60-Lab/pos-service/internal/bridge"
	"github.com/d60-Lab/pos-service/pkg/logger"
)

// openExternal 调用平台默认浏览器打开链接
func openExternal(rawURL string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return exec.Command("xdg-open", rawURL).Start()
	}
}

// 桥宿主：在 stdin/stdout 上服务桌面壳的 greet / open-external / show-dialog 调用。
// 无图形环境，show-dialog 降级为 stderr 提示并默认选择 OK。
func main() {
	_ = logger.Init("release")
	defer logger.Sync()

	b := bridge.New(
		bridge.WithOpener(openExternal),
		bridge.WithPrompter(func(message string) (bridge.DialogResult, error) {
			fmt.Fprintf(os.Stderr, "[dialog] %s\n", message)
			return bridge.DialogResult{Response: 0}, nil
		}),
	)
	if err := b.Serve(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bridge terminated: %v\n", err)
		os.Exit(1)
	}
}
