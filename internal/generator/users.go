package generator

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

// TransactionsPerUser среднее число транзакций на пользователя
const TransactionsPerUser = 8

// UserPool пул синтетических пользователей.
// Идентификаторы выводятся из namespace и номера пользователя,
// поэтому пул не хранит сами id и занимает O(1) памяти.
type UserPool struct {
	namespace uuid.UUID
	size      int
}

// newUserPool создает пул размером max(1, totalRecords/8)
func newUserPool(namespace uuid.UUID, totalRecords int) *UserPool {
	return &UserPool{namespace: namespace, size: UserPoolSize(totalRecords)}
}

// UserPoolSize возвращает размер пула для заданного объема датасета
func UserPoolSize(totalRecords int) int {
	return max(1, totalRecords/TransactionsPerUser)
}

// Size возвращает количество пользователей в пуле
func (p *UserPool) Size() int {
	return p.size
}

// At возвращает идентификатор i-го пользователя
func (p *UserPool) At(i int) string {
	return uuid.NewSHA1(p.namespace, []byte(strconv.Itoa(i))).String()
}

// Pick выбирает пользователя равновероятно
func (p *UserPool) Pick(rng *rand.Rand) string {
	return p.At(rng.Intn(p.size))
}

// DeviceFor возвращает "домашнее" устройство пользователя
func DeviceFor(userID string) string {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return fmt.Sprintf("device_%04d", h.Sum32()%10000)
}
