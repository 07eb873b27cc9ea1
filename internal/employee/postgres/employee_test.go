package postgres

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/company-portal/internal"
	"github.com/frahmantamala/company-portal/internal/employee"
)

func TestEmployeeRepository(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Employee Repository Suite")
}

type testDepartment struct {
	Dnumber int    `gorm:"column:dnumber;primaryKey"`
	Dname   string `gorm:"column:dname"`
}

func (testDepartment) TableName() string { return "department" }

type testEmployee struct {
	SSN     string  `gorm:"column:ssn;primaryKey"`
	Fname   string  `gorm:"column:fname"`
	Lname   string  `gorm:"column:lname"`
	Address string  `gorm:"column:address"`
	Salary  float64 `gorm:"column:salary"`
	Dno     int     `gorm:"column:dno"`
}

func (testEmployee) TableName() string { return "employee" }

type testDependent struct {
	ESSN         string `gorm:"column:essn;primaryKey"`
	Name         string `gorm:"column:dependent_name;primaryKey"`
	Sex          string `gorm:"column:sex"`
	Bdate        string `gorm:"column:bdate"`
	Relationship string `gorm:"column:relationship"`
}

func (testDependent) TableName() string { return "dependent" }

type testWorksOn struct {
	ESSN  string  `gorm:"column:essn;primaryKey"`
	Pno   int     `gorm:"column:pno;primaryKey"`
	Hours float64 `gorm:"column:hours"`
}

func (testWorksOn) TableName() string { return "works_on" }

var _ = ginkgo.Describe("EmployeeRepository", func() {
	var (
		db   *gorm.DB
		repo employee.Repository
	)

	ginkgo.BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		err = db.AutoMigrate(&testDepartment{}, &testEmployee{}, &testDependent{}, &testWorksOn{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(db.Create(&[]testDepartment{
			{Dnumber: 4, Dname: "Administration"},
			{Dnumber: 5, Dname: "Research"},
		}).Error).ToNot(gomega.HaveOccurred())

		gomega.Expect(db.Create(&[]testEmployee{
			{SSN: "123456789", Fname: "John", Lname: "Smith", Address: "731 Fondren, Houston, TX", Salary: 30000, Dno: 5},
			{SSN: "333445555", Fname: "Franklin", Lname: "Wong", Address: "638 Voss, Houston, TX", Salary: 40000, Dno: 5},
			{SSN: "987654321", Fname: "Jennifer", Lname: "Wallace", Address: "291 Berry, Bellaire, TX", Salary: 43000, Dno: 4},
			{SSN: "999887777", Fname: "Alicia", Lname: "Zelaya", Address: "3321 Castle, Spring, TX", Salary: 25000, Dno: 4},
		}).Error).ToNot(gomega.HaveOccurred())

		gomega.Expect(db.Create(&[]testDependent{
			{ESSN: "333445555", Name: "Alice", Sex: "F", Bdate: "1986-04-05", Relationship: "Daughter"},
			{ESSN: "333445555", Name: "Theodore", Sex: "M", Bdate: "1983-10-25", Relationship: "Son"},
			{ESSN: "333445555", Name: "Joy", Sex: "F", Bdate: "1958-05-03", Relationship: "Spouse"},
		}).Error).ToNot(gomega.HaveOccurred())

		gomega.Expect(db.Create(&[]testWorksOn{
			{ESSN: "123456789", Pno: 1, Hours: 32.5},
			{ESSN: "123456789", Pno: 2, Hours: 7.5},
			{ESSN: "333445555", Pno: 2, Hours: 10},
			{ESSN: "333445555", Pno: 3, Hours: 10},
		}).Error).ToNot(gomega.HaveOccurred())

		repo = NewEmployeeRepository(db)
	})

	names := func(rows []employee.RosterRow) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.FullName
		}
		return out
	}

	ginkgo.Describe("Roster", func() {
		ginkgo.It("should list every employee ordered by last name by default", func() {
			rows, err := repo.Roster(employee.RosterParams{})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(names(rows)).To(gomega.Equal([]string{
				"John Smith", "Jennifer Wallace", "Franklin Wong", "Alicia Zelaya",
			}))
		})

		ginkgo.It("should report zero aggregates for an employee with no dependents or assignments", func() {
			rows, err := repo.Roster(employee.RosterParams{Search: "zelaya"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rows).To(gomega.HaveLen(1))
			gomega.Expect(rows[0].NumDependents).To(gomega.Equal(0))
			gomega.Expect(rows[0].NumProjects).To(gomega.Equal(0))
			gomega.Expect(rows[0].TotalHours).To(gomega.Equal(0.0))
		})

		ginkgo.It("should aggregate dependents, projects and hours per employee", func() {
			rows, err := repo.Roster(employee.RosterParams{Search: "wong"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rows).To(gomega.HaveLen(1))
			gomega.Expect(rows[0].Department).To(gomega.Equal("Research"))
			gomega.Expect(rows[0].NumDependents).To(gomega.Equal(3))
			gomega.Expect(rows[0].NumProjects).To(gomega.Equal(2))
			gomega.Expect(rows[0].TotalHours).To(gomega.Equal(20.0))
		})

		ginkgo.It("should match search terms regardless of case", func() {
			lower, err := repo.Roster(employee.RosterParams{Search: "won"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			upper, err := repo.Roster(employee.RosterParams{Search: "WON"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(names(lower)).To(gomega.Equal([]string{"Franklin Wong"}))
			gomega.Expect(upper).To(gomega.Equal(lower))
		})

		ginkgo.It("should match the search term against first names too", func() {
			rows, err := repo.Roster(employee.RosterParams{Search: "alicia"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(names(rows)).To(gomega.Equal([]string{"Alicia Zelaya"}))
		})

		ginkgo.It("should restrict rows to the selected department", func() {
			rows, err := repo.Roster(employee.RosterParams{Department: "Administration"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(names(rows)).To(gomega.Equal([]string{"Jennifer Wallace", "Alicia Zelaya"}))
		})

		ginkgo.It("should order by total hours descending with a stable name tie-break", func() {
			rows, err := repo.Roster(employee.RosterParams{Sort: "hours_desc"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(names(rows)).To(gomega.Equal([]string{
				"John Smith", "Franklin Wong", "Jennifer Wallace", "Alicia Zelaya",
			}))
		})

		ginkgo.It("should fall back to the default order for an unrecognized sort key", func() {
			byDefault, err := repo.Roster(employee.RosterParams{})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			byUnknown, err := repo.Roster(employee.RosterParams{Sort: "salary; DROP TABLE employee"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(byUnknown).To(gomega.Equal(byDefault))
		})
	})

	ginkgo.Describe("GetDetail", func() {
		ginkgo.It("should return the full record for a known ssn", func() {
			detail, err := repo.GetDetail("987654321")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(detail.FullName).To(gomega.Equal("Jennifer Wallace"))
			gomega.Expect(detail.Salary).To(gomega.Equal(43000.0))
			gomega.Expect(detail.Dno).To(gomega.Equal(4))
		})

		ginkgo.It("should return the not found error for an unknown ssn", func() {
			_, err := repo.GetDetail("000000000")
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
		})
	})

	ginkgo.Describe("ListDependents", func() {
		ginkgo.It("should list dependents alphabetically", func() {
			deps, err := repo.ListDependents("333445555")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(deps).To(gomega.HaveLen(3))
			gomega.Expect(deps[0].Name).To(gomega.Equal("Alice"))
			gomega.Expect(deps[1].Name).To(gomega.Equal("Joy"))
			gomega.Expect(deps[2].Name).To(gomega.Equal("Theodore"))
		})

		ginkgo.It("should return nothing for an employee without dependents", func() {
			deps, err := repo.ListDependents("123456789")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(deps).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("UpsertDependent", func() {
		ginkgo.It("should insert a new dependent", func() {
			err := repo.UpsertDependent("123456789", employee.DependentDTO{
				Name: "Michael", Sex: "M", BirthDate: "1988-01-04", Relationship: "Son",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			deps, err := repo.ListDependents("123456789")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(deps).To(gomega.HaveLen(1))
			gomega.Expect(deps[0].Relationship).To(gomega.Equal("Son"))
		})

		ginkgo.It("should store empty optional fields as NULL and list them as blanks", func() {
			err := repo.UpsertDependent("123456789", employee.DependentDTO{Name: "Michael"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			var count int64
			gomega.Expect(db.Model(&testDependent{}).
				Where("essn = ? AND sex IS NULL AND bdate IS NULL AND relationship IS NULL", "123456789").
				Count(&count).Error).ToNot(gomega.HaveOccurred())
			gomega.Expect(count).To(gomega.Equal(int64(1)))

			deps, err := repo.ListDependents("123456789")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(deps).To(gomega.HaveLen(1))
			gomega.Expect(deps[0].Name).To(gomega.Equal("Michael"))
			gomega.Expect(deps[0].Sex).To(gomega.BeEmpty())
			gomega.Expect(deps[0].BirthDate).To(gomega.BeEmpty())
			gomega.Expect(deps[0].Relationship).To(gomega.BeEmpty())
		})

		ginkgo.It("should overwrite the existing row on a repeated name", func() {
			first := employee.DependentDTO{Name: "Alice", Sex: "F", BirthDate: "1986-04-05", Relationship: "Daughter"}
			second := employee.DependentDTO{Name: "Alice", Sex: "F", BirthDate: "1986-04-06", Relationship: "Spouse"}

			gomega.Expect(repo.UpsertDependent("123456789", first)).To(gomega.Succeed())
			gomega.Expect(repo.UpsertDependent("123456789", second)).To(gomega.Succeed())

			deps, err := repo.ListDependents("123456789")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(deps).To(gomega.HaveLen(1))
			gomega.Expect(deps[0].BirthDate).To(gomega.Equal("1986-04-06"))
			gomega.Expect(deps[0].Relationship).To(gomega.Equal("Spouse"))
		})
	})
})
