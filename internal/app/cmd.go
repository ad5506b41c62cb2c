package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はモックトピックサービスをAPIサーバーモードで起動することを示す。
	CommandServe Command = "serve"
	// CommandClient はクライアントモードで起動することを示す。
	// トピックストアと時計ストアを構築し、リモートトピックサービスに接続する。
	CommandClient Command = "client"
	// CommandMigrate はデータベースマイグレーションを実行することを示す。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandServeを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "client":
		return CommandClient
	case "migrate":
		return CommandMigrate
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
