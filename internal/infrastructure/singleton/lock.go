package singleton

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/suminyol/AyurSutra/internal/infrastructure/log"
)

const (
	// DefaultPort 服务默认监听端口
	DefaultPort = ":8000"
	// probeTimeout 健康探测超时时间
	probeTimeout = 2 * time.Second
)

// CheckAndLock 用端口占位保证本机只跑一个排程服务实例
// 端口可用时返回 listener（调用方关闭后交给 HTTP 服务器监听）；
// 已有健康实例在该端口服务时返回 (nil, nil)，调用方应直接退出；
// 端口被占用但 /health 探测不通过时返回错误，留给运维处理残留进程
func CheckAndLock(port string) (net.Listener, error) {
	listener, err := net.Listen("tcp", port)
	if err == nil {
		return listener, nil
	}

	if !isAddrInUse(err) {
		return nil, fmt.Errorf("failed to listen on %s: %w", port, err)
	}

	logger := log.NewModuleLogger("singleton", "lock")
	if probeHealth(port) {
		logger.Info("Healthy instance already serving on port", "port", port)
		return nil, nil
	}

	logger.Warn("Port is occupied but health probe failed", "port", port)
	return nil, fmt.Errorf("port %s is occupied but the health probe failed, a stale process may be holding it", port)
}

// isAddrInUse 判断监听失败是否因为地址已被占用
func isAddrInUse(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EADDRINUSE)
}

// probeHealth 探测占用端口的进程是否是一个健康的服务实例
func probeHealth(port string) bool {
	client := &http.Client{
		Timeout: probeTimeout,
	}

	resp, err := client.Get(fmt.Sprintf("http://localhost%s/health", port))
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
