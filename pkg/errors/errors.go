// Package errors は解析パイプライン全体のエラーハンドリングを提供します。
// すべてのエラーは実行全体に対して致命的であり、失敗したステージを特定できる
// 構造化されたエラー情報を保持します。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// DataUnavailableError はデータソースの取得に失敗した場合のエラーです。
// 再試行は仕様上存在しません。ソースごとに1回のフェッチのみ行われます。
type DataUnavailableError struct {
	Source string
	Reason string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("wlequality: data source %q unavailable: %s", e.Source, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DataUnavailableError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("source", e.Source).
		Str("reason", e.Reason).
		Str("type", "DataUnavailableError")
}

// NewDataUnavailableError は新しいDataUnavailableErrorを作成し、スタックトレースを付与します。
func NewDataUnavailableError(source, reason string) error {
	err := &DataUnavailableError{Source: source, Reason: reason}
	return errors.WithStack(err)
}

// SchemaMismatchError はフィルタ後のテーブルに必須カラムが存在しない場合のエラーです。
type SchemaMismatchError struct {
	Table  string
	Column string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("wlequality: schema mismatch in table %q: column %q: %s", e.Table, e.Column, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("table", e.Table).
		Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError は新しいSchemaMismatchErrorを作成し、スタックトレースを付与します。
func NewSchemaMismatchError(table, column, reason string) error {
	err := &SchemaMismatchError{Table: table, Column: column, Reason: reason}
	return errors.WithStack(err)
}

// FitFailureError は学習アルゴリズムが収束しない、または数値エラーを起こした場合のエラーです。
// Fold は交差検証中の失敗した分割番号（1始まり）、最終学習では 0 です。
type FitFailureError struct {
	Algorithm string
	Fold      int
	Err       error
}

func (e *FitFailureError) Error() string {
	if e.Fold > 0 {
		return fmt.Sprintf("wlequality: %s: fit failed on fold %d: %v", e.Algorithm, e.Fold, e.Err)
	}
	return fmt.Sprintf("wlequality: %s: final fit failed: %v", e.Algorithm, e.Err)
}

func (e *FitFailureError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FitFailureError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("algorithm", e.Algorithm).
		Int("fold", e.Fold).
		AnErr("cause", e.Err).
		Str("type", "FitFailureError")
}

// NewFitFailureError は新しいFitFailureErrorを作成し、スタックトレースを付与します。
func NewFitFailureError(algorithm string, fold int, cause error) error {
	err := &FitFailureError{Algorithm: algorithm, Fold: fold, Err: cause}
	return errors.WithStack(err)
}

// PredictionSchemaMismatchError はテストテーブルが学習済みモデルの期待する特徴量と
// 一致しない場合のエラーです。カラム単位の欠落（Column が設定される）と
// 次元数の不一致の両方を表します。
type PredictionSchemaMismatchError struct {
	Expected int
	Got      int
	Column   string
}

func (e *PredictionSchemaMismatchError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("wlequality: prediction input is missing feature column %q the fitted model expects", e.Column)
	}
	return fmt.Sprintf("wlequality: prediction input has %d feature columns, model expects %d", e.Got, e.Expected)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PredictionSchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("expected", e.Expected).
		Int("got", e.Got).
		Str("column", e.Column).
		Str("type", "PredictionSchemaMismatchError")
}

// NewPredictionSchemaMismatchError は新しいPredictionSchemaMismatchErrorを作成し、スタックトレースを付与します。
func NewPredictionSchemaMismatchError(expected, got int) error {
	err := &PredictionSchemaMismatchError{Expected: expected, Got: got}
	return errors.WithStack(err)
}

// NewPredictionMissingColumnError はテストテーブルに特徴量カラムが存在しない場合の
// PredictionSchemaMismatchErrorを作成し、スタックトレースを付与します。
func NewPredictionMissingColumnError(column string, expected int) error {
	err := &PredictionSchemaMismatchError{Expected: expected, Column: column}
	return errors.WithStack(err)
}

// NotFittedError はモデルが未学習の状態で Predict を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("wlequality: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、fold数が2未満の場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("wlequality: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
