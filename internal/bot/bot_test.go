package bot

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	parser := NewCommandParser()

	tests := []struct {
		name      string
		input     string
		wantCmd   string
		wantArgs  []string
		isCommand bool
	}{
		{
			name:      "команда с восклицательным знаком",
			input:     "!протокол",
			wantCmd:   "протокол",
			isCommand: true,
		},
		{
			name:      "команда с точкой",
			input:     ".чек",
			wantCmd:   "чек",
			isCommand: true,
		},
		{
			name:      "команда со слэшем и аргументами",
			input:     "/login секретный пароль",
			wantCmd:   "login",
			wantArgs:  []string{"секретный", "пароль"},
			isCommand: true,
		},
		{
			name:      "регистр команды приводится к нижнему",
			input:     "!ПРОТОКОЛ",
			wantCmd:   "протокол",
			isCommand: true,
		},
		{
			name:      "пробелы вокруг обрезаются",
			input:     "  !огонек  ",
			wantCmd:   "огонек",
			isCommand: true,
		},
		{
			name:      "обычный текст — не команда",
			input:     "просто сообщение",
			isCommand: false,
		},
		{
			name:      "одинокий префикс — не команда",
			input:     "!",
			isCommand: false,
		},
		{
			name:      "пустая строка",
			input:     "",
			isCommand: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, isCommand := parser.ParseCommand(tt.input)

			if isCommand != tt.isCommand {
				t.Fatalf("isCommand = %v, want %v", isCommand, tt.isCommand)
			}
			if !tt.isCommand {
				return
			}
			if cmd != tt.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd, tt.wantCmd)
			}
			if tt.wantArgs != nil && !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}
