// Собирает имена моделей DAO для миграции и вставляет их в main.go сервера.
package main

import (
	"fmt"
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// GetDAOModelsForMigration извлекает имена структур моделей из пакета dao.
// Структуры с пометкой "-migration" в doc-комментарии пропускаются.
func GetDAOModelsForMigration(filePath string) (models []string, err error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		d := doc.New(pkg, filePath, doc.AllDecls)

		for _, t := range d.Types {
			if _, ok := t.Decl.Specs[0].(*ast.TypeSpec).Type.(*ast.StructType); !ok {
				continue
			}
			if strings.Contains(t.Doc, "-migration") {
				slog.Warn("Skip struct migration", "name", t.Name)
				continue
			}

			models = append(models, fmt.Sprintf("&dao.%s{}", t.Name))
		}
	}
	return
}

// main заменяет объявление `var models = []any{...}` в main.go сервера на
// актуальный список моделей пакета dao.
func main() {
	mainFilePath := "../../cmd/yilang/main.go"

	models, err := GetDAOModelsForMigration("../../internal/yilang/dao/")
	if err != nil {
		fmt.Println(err)
	}

	cmd := fmt.Sprintf("var models = []any{%s}", strings.Join(models, ", "))
	fmt.Println(cmd)

	mainFile, err := os.ReadFile(mainFilePath)
	if err != nil {
		fmt.Println(err)
		return
	}

	reg := regexp.MustCompile(`var\s*models\s*=\s*\[\]any{.*}`)
	if err := os.WriteFile(mainFilePath, reg.ReplaceAll(mainFile, []byte(cmd)), 0644); err != nil {
		fmt.Println(err)
	}
}
