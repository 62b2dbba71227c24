package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はHTTPサーバーモードで起動することを示す。
	CommandServe Command = "serve"
	// CommandMigrate はデータベースマイグレーションを実行することを示す。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck はヘルスチェックを実行することを示す。
	// distroless環境でのDockerヘルスチェック用。
	CommandHealthcheck Command = "healthcheck"
	// CommandLogin はCLIのセッションスロットにログインする。
	CommandLogin Command = "login"
	// CommandLogout はCLIのセッションスロットを空にする。
	CommandLogout Command = "logout"
	// CommandWhoami はCLIのセッションスロットのIdentityを表示する。
	CommandWhoami Command = "whoami"
	// CommandVisit はパスへの遷移判定を表示する。
	CommandVisit Command = "visit"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandServeを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch cmd := Command(args[0]); cmd {
	case CommandServe, CommandMigrate, CommandHealthcheck,
		CommandLogin, CommandLogout, CommandWhoami, CommandVisit:
		return cmd
	default:
		return CommandServe
	}
}

// IsSessionCommand はファイルのセッションスロットを操作するCLIコマンドかどうかを返す。
// これらのコマンドはデータベース設定を必要としない。
func (c Command) IsSessionCommand() bool {
	switch c {
	case CommandLogin, CommandLogout, CommandWhoami, CommandVisit:
		return true
	default:
		return false
	}
}
